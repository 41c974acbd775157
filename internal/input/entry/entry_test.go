package entry

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/hexim/internal/input/key"
)

func feed(m *Machine, keys string) {
	for _, ev := range key.MustParseKeys(keys) {
		m.Transition(ev)
	}
}

func TestHexComposition(t *testing.T) {
	tests := []struct {
		keys string
		want byte
	}{
		{"af", 0xaf},
		{"AF", 0xaf},
		{"00", 0x00},
		{"41", 0x41},
		{"ff", 0xff},
		{"a<BS>7f", 0x7f},
		{"zq1g2", 0x12},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			m := New(Hex)
			feed(m, tt.keys)
			got, ok := m.Done()
			if !ok {
				t.Fatalf("Done() ok = false, partial %q", m.Partial())
			}
			if got != tt.want {
				t.Errorf("Done() = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestBackspaceLeavesInitial(t *testing.T) {
	m := New(Hex)
	feed(m, "a<BS>")
	if !m.Initial() {
		t.Errorf("Initial() = false, partial %q", m.Partial())
	}
	if _, ok := m.Done(); ok {
		t.Error("Done() ok = true")
	}

	feed(m, "<BS>")
	if !m.Initial() {
		t.Error("Backspace on empty machine changed state")
	}
}

func TestAsciiComposition(t *testing.T) {
	m := New(Ascii)
	feed(m, "A")
	if v, ok := m.Done(); !ok || v != 'A' {
		t.Errorf("Done() = %q, %v, want 'A', true", v, ok)
	}

	m = New(Ascii)
	feed(m, "<Space>")
	if v, ok := m.Done(); !ok || v != ' ' {
		t.Errorf("Done() = %q, %v, want ' ', true", v, ok)
	}
}

func TestDoneIsInert(t *testing.T) {
	m := New(Hex)
	feed(m, "12")
	feed(m, "34<BS>")
	if v, ok := m.Done(); !ok || v != 0x12 {
		t.Errorf("Done() = %#x, %v, want 0x12, true", v, ok)
	}
}

func TestIgnoresModifiedAndSpecialKeys(t *testing.T) {
	m := New(Hex)
	m.Transition(key.Ctrl('a'))
	m.Transition(key.Special(key.KeyLeft))
	if !m.Initial() {
		t.Errorf("machine changed on ignored keys: %+v", m.State())
	}
}

func TestValidInput(t *testing.T) {
	hex := New(Hex)
	ascii := New(Ascii)
	tests := []struct {
		r         rune
		wantHex   bool
		wantAscii bool
	}{
		{'0', true, true},
		{'F', true, true},
		{'g', false, true},
		{' ', false, true},
		{'~', false, true},
		{0x7f, false, false},
		{'\n', false, false},
		{'é', false, false},
	}
	for _, tt := range tests {
		if got := hex.ValidInput(tt.r); got != tt.wantHex {
			t.Errorf("Hex.ValidInput(%q) = %v, want %v", tt.r, got, tt.wantHex)
		}
		if got := ascii.ValidInput(tt.r); got != tt.wantAscii {
			t.Errorf("Ascii.ValidInput(%q) = %v, want %v", tt.r, got, tt.wantAscii)
		}
	}
}

func TestInputMode(t *testing.T) {
	if Hex.Toggle() != Ascii || Ascii.Toggle() != Hex {
		t.Error("Toggle() does not alternate")
	}
	if Hex.String() != "Hex" || Ascii.String() != "Ascii" {
		t.Errorf("String() = %q, %q", Hex.String(), Ascii.String())
	}
	if m, ok := ParseInputMode("ascii"); !ok || m != Ascii {
		t.Errorf("ParseInputMode(ascii) = %v, %v", m, ok)
	}
	if _, ok := ParseInputMode("octal"); ok {
		t.Error("ParseInputMode(octal) ok = true")
	}
}

// Every byte value can be composed from its two-digit hex spelling.
func TestHexEveryByteProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := rapid.Byte().Draw(t, "b")
		upper := rapid.Bool().Draw(t, "upper")

		digits := []rune("0123456789abcdef")
		if upper {
			digits = []rune("0123456789ABCDEF")
		}
		m := New(Hex)
		m.Transition(key.Char(digits[b>>4]))
		m.Transition(key.Char(digits[b&0x0f]))

		got, ok := m.Done()
		if !ok || got != b {
			t.Fatalf("composed %#x, %v, want %#x", got, ok, b)
		}
	})
}
