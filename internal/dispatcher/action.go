package dispatcher

import (
	"fmt"

	"github.com/dshills/hexim/internal/input/command"
)

// ActionKind identifies an action.
type ActionKind uint8

// Action kinds.
const (
	ActionNone ActionKind = iota
	ActionByte
	ActionMove
	ActionQuit
	ActionForceQuit
	ActionSave
	ActionSaveAs
	ActionSaveAndQuit
	ActionSwitch
	ActionDelete
	ActionToNormal
	ActionToInsert
	ActionToAppend
	ActionToReplace
	ActionToVisual
	ActionToCommand
	ActionClipboardCopy
	ActionClipboardPaste
	ActionYank
	ActionPaste
	ActionUndo
	ActionRedo
	ActionShow
	ActionLua
	ActionSource
)

var actionNames = [...]string{
	ActionNone:           "none",
	ActionByte:           "byte",
	ActionMove:           "move",
	ActionQuit:           "quit",
	ActionForceQuit:      "forceQuit",
	ActionSave:           "save",
	ActionSaveAs:         "saveAs",
	ActionSaveAndQuit:    "saveAndQuit",
	ActionSwitch:         "switch",
	ActionDelete:         "delete",
	ActionToNormal:       "toNormal",
	ActionToInsert:       "toInsert",
	ActionToAppend:       "toAppend",
	ActionToReplace:      "toReplace",
	ActionToVisual:       "toVisual",
	ActionToCommand:      "toCommand",
	ActionClipboardCopy:  "clipboardCopy",
	ActionClipboardPaste: "clipboardPaste",
	ActionYank:           "yank",
	ActionPaste:          "paste",
	ActionUndo:           "undo",
	ActionRedo:           "redo",
	ActionShow:           "show",
	ActionLua:            "lua",
	ActionSource:         "source",
}

// String returns the action name used in logs and metrics.
func (k ActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", k)
}

// Direction is the target of a Move action.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
	// DirOffset jumps to Action.Offset.
	DirOffset
	// DirNewline moves one row down and to the start of that row.
	DirNewline
	// DirRevert swaps the endpoints of a Visual selection.
	DirRevert
)

// Movement qualifies Delete and Paste. MoveNone on Delete means the Visual
// selection.
type Movement uint8

const (
	MoveNone Movement = iota
	MoveLeft
	MoveRight
)

// Action is one operation on the model. Only the fields its kind uses are
// set.
type Action struct {
	Kind ActionKind

	// Byte is the composed value for ActionByte.
	Byte byte

	// Dir and Offset are set for ActionMove.
	Dir    Direction
	Offset int

	// Movement is set for ActionDelete and ActionPaste.
	Movement Movement

	// Path is set for ActionSaveAs and ActionSource.
	Path string

	// Text is the message for ActionShow.
	Text string

	// Code is the Lua chunk for ActionLua.
	Code string
}

// Do returns an action of kind k with no payload.
func Do(k ActionKind) Action {
	return Action{Kind: k}
}

// Move returns a Move action.
func Move(d Direction) Action {
	return Action{Kind: ActionMove, Dir: d}
}

// Jump returns a Move action to offset.
func Jump(offset int) Action {
	return Action{Kind: ActionMove, Dir: DirOffset, Offset: offset}
}

// Delete returns a Delete action.
func Delete(m Movement) Action {
	return Action{Kind: ActionDelete, Movement: m}
}

// Paste returns a Paste action.
func Paste(m Movement) Action {
	return Action{Kind: ActionPaste, Movement: m}
}

// Show returns an action that sets the status message.
func Show(text string) Action {
	return Action{Kind: ActionShow, Text: text}
}

// FromCommand converts a parsed command line into an action.
func FromCommand(cmd command.Command) Action {
	switch cmd.Kind {
	case command.Quit:
		return Do(ActionQuit)
	case command.ForceQuit:
		return Do(ActionForceQuit)
	case command.Save:
		return Do(ActionSave)
	case command.SaveAs:
		return Action{Kind: ActionSaveAs, Path: cmd.Path}
	case command.SaveAndQuit:
		return Do(ActionSaveAndQuit)
	case command.Jump:
		return Jump(cmd.Offset)
	case command.Lua:
		return Action{Kind: ActionLua, Code: cmd.Code}
	case command.Source:
		return Action{Kind: ActionSource, Path: cmd.Path}
	}
	return Do(ActionNone)
}

// String returns a short description for logs.
func (a Action) String() string {
	switch a.Kind {
	case ActionByte:
		return fmt.Sprintf("byte(%#02x)", a.Byte)
	case ActionMove:
		if a.Dir == DirOffset {
			return fmt.Sprintf("move(%#x)", a.Offset)
		}
		return fmt.Sprintf("move(%d)", a.Dir)
	case ActionSaveAs, ActionSource:
		return fmt.Sprintf("%s(%q)", a.Kind, a.Path)
	}
	return a.Kind.String()
}
