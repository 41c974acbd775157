package dispatcher

import (
	"unicode/utf8"

	"github.com/dshills/hexim/internal/input/command"
	"github.com/dshills/hexim/internal/input/entry"
	"github.com/dshills/hexim/internal/input/key"
	"github.com/dshills/hexim/internal/input/mode"
)

// transition handles ev in the current mode and returns the next mode.
// Keys with no binding leave the mode unchanged.
func (c *Controller) transition(ev key.Event) (mode.State, bool) {
	switch c.state.Kind() {
	case mode.KindInsert:
		return c.insertMode(ev), true
	case mode.KindReplace:
		return c.replaceMode(ev), true
	case mode.KindVisual:
		return c.visualMode(ev), true
	case mode.KindCommand:
		return c.commandMode(ev)
	default:
		return c.normalMode(ev), true
	}
}

// direction maps arrow keys, and h/j/k/l when vi is set, to a direction.
func direction(ev key.Event, vi bool) (Direction, bool) {
	switch {
	case ev.Is(key.KeyLeft):
		return DirLeft, true
	case ev.Is(key.KeyRight):
		return DirRight, true
	case ev.Is(key.KeyUp):
		return DirUp, true
	case ev.Is(key.KeyDown):
		return DirDown, true
	}
	if !vi || !ev.IsChar() {
		return 0, false
	}
	switch ev.Rune {
	case 'h':
		return DirLeft, true
	case 'l':
		return DirRight, true
	case 'k':
		return DirUp, true
	case 'j':
		return DirDown, true
	}
	return 0, false
}

func (c *Controller) fresh() *entry.Machine {
	return entry.New(c.input)
}

func (c *Controller) normalMode(ev key.Event) mode.State {
	if d, ok := direction(ev, true); ok {
		c.apply(Move(d))
		return mode.Normal()
	}

	switch {
	case ev.Is(key.KeyEscape):
		c.apply(Do(ActionToNormal))
	case ev.Is(key.KeyBackspace):
		c.apply(Move(DirLeft))
	case ev.Is(key.KeyTab):
		c.apply(Do(ActionSwitch))
	case ev.Is(key.KeyEnter):
		c.apply(Move(DirNewline))
	case ev.Is(key.KeyDelete):
		c.apply(Delete(MoveRight))
	case ev.IsCtrl('c'):
		c.apply(Do(ActionClipboardCopy))
	case ev.IsCtrl('r'):
		c.apply(Do(ActionRedo))
	case ev.IsChar():
		return c.normalChar(ev.Rune)
	}
	return mode.Normal()
}

func (c *Controller) normalChar(r rune) mode.State {
	switch r {
	case 'a':
		c.apply(Do(ActionToAppend))
		return mode.Insert(c.fresh())
	case 'i':
		c.apply(Do(ActionToInsert))
		return mode.Insert(c.fresh())
	case 'r':
		c.apply(Do(ActionToReplace))
		return mode.Replace(c.fresh(), false)
	case 'R':
		c.apply(Do(ActionToReplace))
		return mode.Replace(c.fresh(), true)
	case 'v':
		c.apply(Do(ActionToVisual))
		return mode.Visual()
	case ':':
		c.apply(Do(ActionToCommand))
		return mode.Command("")
	case 'x':
		c.apply(Delete(MoveRight))
	case 'y':
		c.apply(Do(ActionYank))
	case 'p':
		c.apply(Paste(MoveRight))
	case 'P':
		c.apply(Paste(MoveLeft))
	case 'u':
		c.apply(Do(ActionUndo))
	}
	return mode.Normal()
}

// compose feeds ev to m. It returns the completed byte, if any.
func compose(m *entry.Machine, ev key.Event) (byte, bool) {
	m.Transition(ev)
	return m.Done()
}

func (c *Controller) insertMode(ev key.Event) mode.State {
	m := c.state.Entry()

	if ev.IsChar() && m.ValidInput(ev.Rune) {
		if b, done := compose(m, ev); done {
			c.apply(Action{Kind: ActionByte, Byte: b})
			return mode.Insert(c.fresh())
		}
		return c.state
	}
	if ev.Is(key.KeyEscape) {
		c.apply(Do(ActionToNormal))
		return mode.Normal()
	}
	// A half-typed byte only accepts more input or Esc.
	if !m.Initial() {
		return c.state
	}

	if d, ok := direction(ev, false); ok {
		c.apply(Move(d))
		return c.state
	}
	switch {
	case ev.Is(key.KeyBackspace):
		c.apply(Delete(MoveLeft))
	case ev.Is(key.KeyDelete):
		c.apply(Delete(MoveRight))
	case ev.Is(key.KeyInsert):
		c.apply(Do(ActionToReplace))
		return mode.Replace(c.fresh(), true)
	case ev.Is(key.KeyTab):
		c.apply(Do(ActionSwitch))
		return mode.Insert(c.fresh())
	case ev.IsCtrl('v'):
		c.apply(Do(ActionClipboardPaste))
	}
	return c.state
}

func (c *Controller) replaceMode(ev key.Event) mode.State {
	m := c.state.Entry()
	repeat := c.state.Repeat()

	if ev.IsChar() && m.ValidInput(ev.Rune) {
		b, done := compose(m, ev)
		if !done {
			return c.state
		}
		c.apply(Action{Kind: ActionByte, Byte: b})
		if repeat {
			c.apply(Move(DirRight))
			return mode.Replace(c.fresh(), true)
		}
		c.apply(Do(ActionToNormal))
		return mode.Normal()
	}
	if ev.Is(key.KeyEscape) {
		c.apply(Do(ActionToNormal))
		return mode.Normal()
	}
	if !m.Initial() {
		return c.state
	}

	if d, ok := direction(ev, true); ok {
		if repeat {
			c.apply(Move(d))
		}
		return c.state
	}
	switch {
	case ev.Is(key.KeyBackspace):
		c.apply(Move(DirLeft))
	case ev.Is(key.KeyTab):
		c.apply(Do(ActionSwitch))
		return mode.Replace(c.fresh(), repeat)
	}
	return c.state
}

func (c *Controller) visualMode(ev key.Event) mode.State {
	if d, ok := direction(ev, true); ok {
		c.apply(Move(d))
		return mode.Visual()
	}

	switch {
	case ev.Is(key.KeyEscape):
		c.apply(Do(ActionToNormal))
		return mode.Normal()
	case ev.IsCtrl('c'):
		c.apply(Do(ActionClipboardCopy))
	case ev.IsChar():
		switch ev.Rune {
		case 'y':
			c.apply(Do(ActionYank))
			return mode.Normal()
		case 'o':
			c.apply(Move(DirRevert))
		case 'x', 'd':
			c.apply(Delete(MoveNone))
			c.apply(Do(ActionToNormal))
			return mode.Normal()
		}
	}
	return mode.Visual()
}

func (c *Controller) commandMode(ev key.Event) (mode.State, bool) {
	text := c.state.Text()

	switch {
	case ev.Is(key.KeyEnter):
		cmd, err := command.Parse(text)
		if err != nil {
			c.apply(Show(err.Error()))
			return mode.Normal(), true
		}
		return mode.Normal(), c.apply(FromCommand(cmd))
	case ev.Is(key.KeyEscape):
		c.apply(Show(""))
		return mode.Normal(), true
	case ev.Is(key.KeyBackspace):
		_, size := utf8.DecodeLastRuneInString(text)
		text = text[:len(text)-size]
	case ev.IsChar():
		text += string(ev.Rune)
	default:
		return c.state, true
	}

	c.apply(Show(":" + text))
	return mode.Command(text), true
}
