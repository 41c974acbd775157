package key

import "fmt"

// Event represents a single key press event.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Char returns an unmodified character event.
func Char(r rune) Event {
	return NewRuneEvent(r, ModNone)
}

// Ctrl returns a Ctrl+r event.
func Ctrl(r rune) Event {
	return NewRuneEvent(r, ModCtrl)
}

// Special returns an unmodified special key event.
func Special(k Key) Event {
	return NewSpecialEvent(k, ModNone)
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a character typed without Ctrl, Alt or
// Meta. Shift is part of the character itself.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.Modifiers.Has(ModCtrl|ModAlt|ModMeta)
}

// IsCtrl reports whether the event is Ctrl+r.
func (e Event) IsCtrl(r rune) bool {
	return e.IsRune() && e.Rune == r && e.Modifiers.HasCtrl()
}

// Is reports whether the event is the special key k. Modifiers are ignored.
func (e Event) Is(k Key) bool {
	return e.Key == k
}

// String returns the Vim-style notation for the event, for example "a",
// "<C-c>" or "<Esc>".
func (e Event) String() string {
	if e.IsChar() {
		switch e.Rune {
		case ' ':
			return "<Space>"
		case '<':
			return "<lt>"
		}
		return string(e.Rune)
	}

	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
	}
	mods := e.Modifiers
	if e.Key == KeyRune {
		mods &^= ModShift
	}
	return "<" + mods.String() + name + ">"
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{Key: %s, Rune: %q, Modifiers: %q}",
		e.Key, e.Rune, e.Modifiers.String())
}
