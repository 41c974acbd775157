package dispatcher

import (
	"bytes"
	"fmt"
	"time"

	"github.com/dshills/hexim/internal/engine"
	"github.com/dshills/hexim/internal/engine/cursor"
	"github.com/dshills/hexim/internal/input/entry"
	"github.com/dshills/hexim/internal/input/key"
	"github.com/dshills/hexim/internal/input/mode"
	"github.com/dshills/hexim/internal/renderer/viewport"
)

// Status messages.
const (
	msgUnsaved     = "save your changes with :w or force quit with :q!"
	msgNothingUndo = "Nothing to undo"
	msgNothingRedo = "Nothing to redo"
)

// Controller is the modal controller: it owns the mode, the input mode and
// the yank register, and applies actions to the model.
//
// Controller is not safe for concurrent use; the event loop owns it.
type Controller struct {
	state mode.State
	model *engine.Model
	view  View

	input entry.InputMode
	yank  []byte

	clipboard Clipboard
	scripts   ScriptRunner
	onSave    func(path string)

	logger        Logger
	metrics       *Metrics
	recoverPanics bool

	// failed is set while applying an action that reported an error.
	failed bool
}

// New creates a controller in Normal mode over model, reporting to view.
func New(model *engine.Model, view View, opts ...Option) *Controller {
	if view == nil {
		view = nopView{}
	}
	c := &Controller{
		state:         mode.Normal(),
		model:         model,
		view:          view,
		input:         entry.Hex,
		logger:        nopLogger{},
		recoverPanics: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.sync()
	return c
}

// OnSave registers fn to run after every successful save with the path
// written.
func (c *Controller) OnSave(fn func(path string)) {
	c.onSave = fn
}

// Open loads path into the model and shows it in the status head. On
// failure the head shows the error instead.
func (c *Controller) Open(path string) error {
	if err := c.model.Open(path); err != nil {
		c.view.SetHead(fmt.Sprintf("error: %v", err))
		return err
	}
	c.view.SetHead(path)
	c.sync()
	return nil
}

// State returns the current mode.
func (c *Controller) State() mode.State {
	return c.state
}

// InputMode returns the active input mode.
func (c *Controller) InputMode() entry.InputMode {
	return c.input
}

// Yank returns a copy of the yank register.
func (c *Controller) Yank() []byte {
	return bytes.Clone(c.yank)
}

// Model returns the edit model.
func (c *Controller) Model() *engine.Model {
	return c.model
}

// Metrics returns the dispatch statistics, nil unless enabled.
func (c *Controller) Metrics() *Metrics {
	return c.metrics
}

// Dispatch handles one key event. It returns false when the editor
// should stop.
func (c *Controller) Dispatch(ev key.Event) (run bool) {
	start := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.RecordKey(time.Since(start))
		}
	}()

	if c.recoverPanics {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error("panic handling %s in %s: %v", ev, c.state, r)
				if c.metrics != nil {
					c.metrics.RecordPanic()
				}
				c.state = mode.Normal()
				c.model.ToNormal()
				c.view.SetBody(fmt.Sprintf("internal error: %v", r))
				c.sync()
				run = true
			}
		}()
	}

	c.state, run = c.transition(ev)
	c.sync()
	return run
}

// Apply runs one action outside of key handling, for example from the
// command line or a script host. It returns false when the editor should
// stop.
func (c *Controller) Apply(a Action) bool {
	run := c.apply(a)
	c.sync()
	return run
}

// sync reports the caret and mode to the view.
func (c *Controller) sync() {
	index := c.model.Index()
	c.view.ScrollTo(index)
	c.view.SetIndex(index)
	c.view.SetMode(c.state)
}

// fail shows an error message and marks the running action as failed.
func (c *Controller) fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.failed = true
	c.logger.Debug("action failed: %s", msg)
	c.view.SetBody(msg)
}

func (c *Controller) apply(a Action) bool {
	outer := c.failed
	c.failed = false
	start := time.Now()

	c.logger.Debug("apply %s", a)
	run := c.applyAction(a)

	if c.metrics != nil {
		c.metrics.RecordAction(a.Kind, time.Since(start), c.failed)
	}
	c.failed = outer || c.failed
	return run
}

func (c *Controller) applyAction(a Action) bool {
	switch a.Kind {
	case ActionByte:
		switch c.model.Caret().Kind() {
		case cursor.KindIndex:
			c.insert(a.Byte)
		case cursor.KindReplace:
			c.replace(a.Byte)
		}
		c.model.Snapshot()

	case ActionMove:
		c.move(a)

	case ActionQuit:
		modified, err := c.model.IsModified()
		if err != nil {
			c.fail("could not check %q for changes: %v", c.model.Path(), err)
			return true
		}
		if modified {
			c.view.SetBody(msgUnsaved)
			return true
		}
		return false

	case ActionForceQuit:
		return false

	case ActionSave:
		c.save()

	case ActionSaveAs:
		c.saveAs(a.Path)

	case ActionSaveAndQuit:
		if c.save() {
			return false
		}

	case ActionSwitch:
		c.input = c.input.Toggle()
		c.view.SetBody(fmt.Sprintf("-- Normal (%s) --", c.input))

	case ActionDelete:
		c.delete(a.Movement)

	case ActionToNormal:
		c.model.ToNormal()
		c.view.SetBody(fmt.Sprintf("-- Normal (%s) --", c.input))

	case ActionToInsert:
		c.model.ToInsert()
		c.view.SetBody(fmt.Sprintf("-- Insert (%s) --", c.input))

	case ActionToAppend:
		c.model.ToInsert()
		c.view.SetBody(fmt.Sprintf("-- Insert (%s) --", c.input))
		c.apply(Move(DirRight))

	case ActionToReplace:
		c.model.ToReplace()
		c.view.SetBody(fmt.Sprintf("-- Replace (%s) --", c.input))

	case ActionToVisual:
		c.model.ToVisual()
		c.view.SetBody("-- Visual --")

	case ActionToCommand:
		c.view.SetBody(":")

	case ActionClipboardCopy:
		c.clipboardCopy()

	case ActionClipboardPaste:
		c.clipboardPaste()

	case ActionYank:
		c.yankSelection()

	case ActionPaste:
		c.pasteYank(a.Movement)

	case ActionUndo:
		if !c.model.Undo() {
			c.view.SetBody(msgNothingUndo)
		}
		c.conformCaret()
		c.view.ScrollTo(c.model.Index())

	case ActionRedo:
		if !c.model.Redo() {
			c.view.SetBody(msgNothingRedo)
		}
		c.conformCaret()
		c.view.ScrollTo(c.model.Index())

	case ActionShow:
		c.view.SetBody(a.Text)

	case ActionLua, ActionSource:
		c.runScript(a)
	}
	return true
}

func (c *Controller) move(a Action) {
	switch a.Dir {
	case DirLeft:
		c.model.DecIndex(1)
	case DirRight:
		c.model.IncIndex(1)
	case DirUp:
		c.model.DecIndex(viewport.RowWidth)
	case DirDown:
		c.model.IncIndex(viewport.RowWidth)
	case DirOffset:
		c.model.SetIndex(a.Offset)
		c.view.SetBody("")
	case DirNewline:
		c.model.IncIndex(viewport.RowWidth)
		c.model.SetIndex(viewport.Align(c.model.Index(), viewport.RowWidth))
	case DirRevert:
		if !c.model.Pivot() {
			return
		}
	}

	c.view.ScrollTo(c.model.Index())
	c.view.SetIndex(c.model.Index())
}

// conformCaret gives a restored caret the kind the current mode expects.
// Snapshots taken while inserting carry an Index caret that Normal mode
// cannot work with.
func (c *Controller) conformCaret() {
	want := cursor.KindOffset
	switch c.state.Kind() {
	case mode.KindInsert:
		want = cursor.KindIndex
	case mode.KindReplace:
		want = cursor.KindReplace
	case mode.KindVisual:
		want = cursor.KindVisual
	}
	if c.model.Caret().Kind() == want {
		return
	}
	switch want {
	case cursor.KindIndex:
		c.model.ToInsert()
	case cursor.KindReplace:
		c.model.ToReplace()
	case cursor.KindVisual:
		c.model.ToVisual()
	default:
		c.model.ToNormal()
	}
}

// insert adds value at the caret. The caret advances even when the edit
// is rejected.
func (c *Controller) insert(value byte) {
	index := c.model.Index()
	if err := c.model.Edit(index, index, []byte{value}); err != nil {
		c.fail("could not insert value (%v)", err)
	}
	c.model.IncIndex(1)
}

func (c *Controller) replace(value byte) {
	index := c.model.Index()
	if err := c.model.Edit(index, index+1, []byte{value}); err != nil {
		c.fail("could not replace value (%v)", err)
	}
}

// paste inserts value at index and moves the caret past it.
func (c *Controller) paste(index int, value []byte) {
	if err := c.model.Edit(index, index, value); err != nil {
		c.fail("could not insert value (%v)", err)
	}
	c.model.IncIndex(len(value))
	c.view.ScrollTo(c.model.Index())
}

// removeLeft deletes the byte before the caret. At the end of the buffer
// the re-bound after the edit already moved the caret left.
func (c *Controller) removeLeft() {
	index := c.model.Index()
	end := index == c.model.Len()

	if err := c.model.Edit(cursor.SaturatingSub(index, 1), index, nil); err != nil {
		c.fail("could not remove value (%v)", err)
	}
	if !end {
		c.model.DecIndex(1)
	}
}

func (c *Controller) removeRight() {
	index := c.model.Index()
	if err := c.model.Edit(index, cursor.SaturatingAdd(index, 1), nil); err != nil {
		c.fail("could not remove value (%v)", err)
	}
}

func (c *Controller) delete(m Movement) {
	if c.model.Len() == 0 {
		return
	}

	switch m {
	case MoveLeft:
		c.removeLeft()
		c.model.Snapshot()

	case MoveRight:
		if c.model.Caret().Kind() == cursor.KindOffset {
			if b, ok := c.model.ByteAt(c.model.Index()); ok {
				c.yank = []byte{b}
			}
		}
		c.removeRight()
		c.model.Snapshot()

	case MoveNone:
		lo, hi, ok := c.model.Selection()
		if !ok {
			return
		}
		if data, err := c.model.Slice(lo, hi+1); err == nil {
			c.yank = data
		}
		if err := c.model.Edit(lo, hi+1, nil); err != nil {
			c.fail("could not remove range (%v)", err)
		} else {
			c.model.SetIndex(lo)
		}
		c.view.ScrollTo(c.model.Index())
		c.model.Snapshot()
	}
}

// selected returns the bytes under an Offset caret or a Visual selection.
func (c *Controller) selected() ([]byte, bool) {
	if c.model.Len() == 0 {
		return nil, false
	}
	switch c.model.Caret().Kind() {
	case cursor.KindOffset:
		b, ok := c.model.ByteAt(c.model.Index())
		return []byte{b}, ok
	case cursor.KindVisual:
		lo, hi, _ := c.model.Selection()
		data, err := c.model.Slice(lo, hi+1)
		return data, err == nil
	}
	return nil, false
}

// yankSelection fills the register. Visual mode is left even when there
// was nothing to yank.
func (c *Controller) yankSelection() {
	if data, ok := c.selected(); ok {
		c.yank = data
	}
	if c.model.Caret().Kind() == cursor.KindVisual {
		c.apply(Do(ActionToNormal))
	}
}

func (c *Controller) pasteYank(m Movement) {
	if len(c.yank) == 0 {
		return
	}
	value := bytes.Clone(c.yank)

	switch m {
	case MoveLeft, MoveNone:
		c.paste(c.model.Index(), value)
		c.apply(Move(DirLeft))
	case MoveRight:
		// An empty buffer has no byte to paste after.
		c.paste(min(c.model.Index()+1, c.model.Len()), value)
	}
	c.model.Snapshot()
}

func (c *Controller) clipboardCopy() {
	data, ok := c.selected()
	if !ok {
		return
	}
	if c.clipboard == nil {
		c.fail("%v", ErrNoClipboard)
		return
	}
	msg, err := c.clipboard.Copy(data)
	if err != nil {
		c.fail("%v", err)
		return
	}
	c.view.SetBody(msg)
}

func (c *Controller) clipboardPaste() {
	if c.clipboard == nil {
		c.fail("%v", ErrNoClipboard)
		return
	}
	data, err := c.clipboard.Paste()
	if err != nil {
		c.fail("%v", err)
		return
	}
	c.paste(c.model.Index(), data)
	c.model.Snapshot()
}

func (c *Controller) save() bool {
	if err := c.model.Save(); err != nil {
		c.fail("could not save \"%s\": %v", c.model.Path(), err)
		return false
	}
	c.view.SetBody(fmt.Sprintf("\"%s\" saved", c.model.Path()))
	c.saved(c.model.Path())
	return true
}

func (c *Controller) saveAs(path string) bool {
	if err := c.model.SaveAs(path); err != nil {
		c.fail("could not save \"%s\": %v", path, err)
		return false
	}
	c.view.SetBody(fmt.Sprintf("\"%s\" saved", path))
	c.saved(path)
	return true
}

func (c *Controller) saved(path string) {
	c.logger.Info("saved %s (%d bytes)", path, c.model.Len())
	if c.onSave != nil {
		c.onSave(path)
	}
}

// runScript executes Lua code. All edits a script makes form one undo
// step.
func (c *Controller) runScript(a Action) {
	if c.scripts == nil {
		c.fail("%v", ErrNoScripting)
		return
	}

	before := bytes.Clone(c.model.Bytes())
	var err error
	if a.Kind == ActionSource {
		err = c.scripts.RunFile(a.Path)
	} else {
		err = c.scripts.Run(a.Code)
	}
	if err != nil {
		c.fail("lua: %v", err)
	}

	if !c.model.Equal(before) {
		c.conformCaret()
		c.model.Snapshot()
	}
	c.view.ScrollTo(c.model.Index())
}
