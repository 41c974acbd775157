package mode

import (
	"fmt"

	"github.com/dshills/hexim/internal/input/entry"
)

// Kind identifies the active mode.
type Kind uint8

const (
	KindNormal Kind = iota
	KindInsert
	KindReplace
	KindVisual
	KindCommand
)

// String returns the status-line name of the mode.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "NORMAL"
	case KindInsert:
		return "INSERT"
	case KindReplace:
		return "REPLACE"
	case KindVisual:
		return "VISUAL"
	case KindCommand:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal and visual mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor (replace mode).
	CursorUnderline

	// CursorHidden hides the grid cursor (command mode, where the cursor
	// follows the command line instead).
	CursorHidden
)

// State is the controller's persistent state between key events.
type State struct {
	kind   Kind
	entry  *entry.Machine
	repeat bool
	text   string
}

// Normal returns the Normal state.
func Normal() State {
	return State{kind: KindNormal}
}

// Insert returns an Insert state composing with m.
func Insert(m *entry.Machine) State {
	return State{kind: KindInsert, entry: m}
}

// Replace returns a Replace state composing with m. When repeat is true
// the state survives each completed byte.
func Replace(m *entry.Machine, repeat bool) State {
	return State{kind: KindReplace, entry: m, repeat: repeat}
}

// Visual returns the Visual state.
func Visual() State {
	return State{kind: KindVisual}
}

// Command returns a Command state holding the text typed so far.
func Command(text string) State {
	return State{kind: KindCommand, text: text}
}

// Kind returns the active mode.
func (s State) Kind() Kind {
	return s.kind
}

// Name returns the status-line name of the mode.
func (s State) Name() string {
	return s.kind.String()
}

// Entry returns the composing machine for Insert and Replace, nil otherwise.
func (s State) Entry() *entry.Machine {
	return s.entry
}

// Repeat reports whether a Replace state keeps replacing after each byte.
func (s State) Repeat() bool {
	return s.repeat
}

// Text returns the command text typed so far.
func (s State) Text() string {
	return s.text
}

// Composing reports whether an entry machine has accepted input that has
// not completed a byte yet.
func (s State) Composing() bool {
	return s.entry != nil && !s.entry.Initial()
}

// CursorStyle returns the cursor style for this state.
func (s State) CursorStyle() CursorStyle {
	switch s.kind {
	case KindInsert:
		return CursorBar
	case KindReplace:
		return CursorUnderline
	case KindCommand:
		return CursorHidden
	default:
		return CursorBlock
	}
}

// String implements fmt.Stringer for logging.
func (s State) String() string {
	switch s.kind {
	case KindInsert, KindReplace:
		partial := ""
		if s.entry != nil {
			partial = s.entry.Partial()
		}
		if s.kind == KindReplace && s.repeat {
			return fmt.Sprintf("%s(repeat, %q)", s.kind, partial)
		}
		return fmt.Sprintf("%s(%q)", s.kind, partial)
	case KindCommand:
		return fmt.Sprintf("%s(%q)", s.kind, s.text)
	default:
		return s.kind.String()
	}
}
