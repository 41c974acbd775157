package key

import "strings"

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool { return m.Has(ModCtrl) }

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool { return m.Has(ModAlt) }

// String returns the Vim-style prefix letters, for example "C-A-".
func (m Modifier) String() string {
	var b strings.Builder
	if m.HasCtrl() {
		b.WriteString("C-")
	}
	if m.HasAlt() {
		b.WriteString("A-")
	}
	if m.Has(ModMeta) {
		b.WriteString("D-")
	}
	if m.Has(ModShift) {
		b.WriteString("S-")
	}
	return b.String()
}
