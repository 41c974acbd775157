// Package entry composes single byte values from keystrokes.
//
// A Machine lives for exactly one byte. In Hex mode it collects two hex
// digits, in Ascii mode one printable character. Once the value is
// complete the machine is inert; the caller starts a fresh one.
package entry

import (
	"strconv"

	"github.com/dshills/hexim/internal/input/key"
)

// InputMode selects how keystrokes are turned into bytes.
type InputMode uint8

const (
	// Hex composes a byte from two hexadecimal digits.
	Hex InputMode = iota
	// Ascii composes a byte from one printable ASCII character.
	Ascii
)

// String returns "Hex" or "Ascii".
func (m InputMode) String() string {
	if m == Ascii {
		return "Ascii"
	}
	return "Hex"
}

// Toggle returns the other mode.
func (m InputMode) Toggle() InputMode {
	if m == Ascii {
		return Hex
	}
	return Ascii
}

// ParseInputMode converts a configuration value ("hex" or "ascii").
func ParseInputMode(s string) (InputMode, bool) {
	switch s {
	case "hex", "Hex", "HEX":
		return Hex, true
	case "ascii", "Ascii", "ASCII":
		return Ascii, true
	}
	return Hex, false
}

// width returns the number of characters that complete one byte.
func (m InputMode) width() int {
	if m == Ascii {
		return 1
	}
	return 2
}

// State is the machine's sub-state: either incomplete with the characters
// accepted so far, or done with the composed value.
type State struct {
	Done    bool
	Partial string
	Value   byte
}

// Machine composes one byte.
type Machine struct {
	mode  InputMode
	state State
}

// New returns a machine in the empty incomplete state.
func New(mode InputMode) *Machine {
	return &Machine{mode: mode}
}

// Mode returns the machine's input mode.
func (m *Machine) Mode() InputMode {
	return m.mode
}

// State returns the current sub-state.
func (m *Machine) State() State {
	return m.state
}

// Initial reports whether nothing has been composed yet.
func (m *Machine) Initial() bool {
	return !m.state.Done && m.state.Partial == ""
}

// Done returns the composed byte once the machine has completed.
func (m *Machine) Done() (byte, bool) {
	return m.state.Value, m.state.Done
}

// Partial returns the characters accepted so far.
func (m *Machine) Partial() string {
	return m.state.Partial
}

// ValidInput reports whether r would be accepted next.
func (m *Machine) ValidInput(r rune) bool {
	if m.mode == Ascii {
		return r >= 0x20 && r <= 0x7e
	}
	return isHexDigit(r)
}

// Transition feeds one key event. Backspace removes the last accepted
// character; an accepted character is appended; any other key is ignored.
// A completed machine ignores everything.
func (m *Machine) Transition(ev key.Event) {
	if m.state.Done {
		return
	}

	if ev.Is(key.KeyBackspace) {
		if p := m.state.Partial; p != "" {
			m.state.Partial = p[:len(p)-1]
		}
		return
	}

	if !ev.IsChar() || !m.ValidInput(ev.Rune) {
		return
	}

	m.state.Partial += string(ev.Rune)
	if len(m.state.Partial) < m.mode.width() {
		return
	}

	var value byte
	if m.mode == Ascii {
		value = m.state.Partial[0]
	} else {
		v, err := strconv.ParseUint(m.state.Partial, 16, 8)
		if err != nil {
			// Only validated digits reach this point.
			panic("entry: invalid hex input " + strconv.Quote(m.state.Partial))
		}
		value = byte(v)
	}
	m.state = State{Done: true, Value: value}
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
