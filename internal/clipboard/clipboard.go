// Package clipboard moves bytes between the editor and the system
// clipboard. Bytes travel as hex text ("de ad be ef") so binary data
// survives clipboards that only carry text.
package clipboard

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
)

// Errors returned by the system clipboard.
var (
	ErrDisabled = errors.New("clipboard is disabled")
	ErrEmpty    = errors.New("clipboard is empty")
)

var (
	clipboardWrite = clipboard.WriteAll
	clipboardRead  = clipboard.ReadAll
)

// System is the clipboard collaborator backed by the OS clipboard.
type System struct {
	enabled bool
}

// New creates a system clipboard. A disabled clipboard fails every call
// with ErrDisabled.
func New(enabled bool) *System {
	return &System{enabled: enabled}
}

// Enabled reports whether the clipboard is in use.
func (s *System) Enabled() bool {
	return s.enabled
}

// Copy writes data to the clipboard. The returned message is meant for
// the status line.
func (s *System) Copy(data []byte) (string, error) {
	if !s.enabled {
		return "", ErrDisabled
	}
	if err := clipboardWrite(Encode(data)); err != nil {
		return "", fmt.Errorf("could not copy to clipboard: %w", err)
	}
	if len(data) == 1 {
		return "copied 1 byte to clipboard", nil
	}
	return fmt.Sprintf("copied %d bytes to clipboard", len(data)), nil
}

// Paste reads the clipboard and decodes it as hex text.
func (s *System) Paste() ([]byte, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}
	text, err := clipboardRead()
	if err != nil {
		return nil, fmt.Errorf("could not read clipboard: %w", err)
	}
	data, err := Decode(text)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return data, nil
}

// Encode formats data as lowercase hex pairs separated by spaces.
func Encode(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data) * 3)
	for i, c := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(hex.EncodeToString([]byte{c}))
	}
	return sb.String()
}

// Decode parses hex text. Whitespace is ignored anywhere and a leading
// "0x" is accepted, so both "de ad" and "0xdead" decode to the same bytes.
func Decode(text string) ([]byte, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("clipboard does not hold hex bytes: %w", err)
	}
	return data, nil
}
