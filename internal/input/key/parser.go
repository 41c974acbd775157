package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// Parse parses a single key specification.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Vim-style: "<C-c>", "<A-Esc>", "<CR>", "<Esc>", "<BS>", "<Space>"
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseVimStyle(spec[1 : len(spec)-1])
	}
	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return Char(r), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// ParseKeys parses a run of keys in Vim notation, such as "i41<Esc>:q!<CR>".
// A '<' that does not start a bracketed name must be written "<lt>".
func ParseKeys(s string) ([]Event, error) {
	var events []Event
	for len(s) > 0 {
		if s[0] == '<' {
			end := strings.IndexByte(s, '>')
			if end < 0 {
				return nil, fmt.Errorf("%w: %q", ErrUnmatchedBracket, s)
			}
			ev, err := Parse(s[:end+1])
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
			s = s[end+1:]
			continue
		}
		r, size := utf8.DecodeRuneInString(s)
		events = append(events, Char(r))
		s = s[size:]
	}
	return events, nil
}

// MustParseKeys is like ParseKeys but panics on error.
// Use only for known-valid specs in tests and initialization code.
func MustParseKeys(s string) []Event {
	events, err := ParseKeys(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return events
}

// parseVimStyle parses Vim-style notation like "C-s", "A-Esc", "CR".
func parseVimStyle(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")
	keyPart := parts[len(parts)-1]
	if keyPart == "" && len(parts) > 1 {
		// "<C-->" names the minus key.
		keyPart = "-"
		parts = parts[:len(parts)-1]
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			mods |= ModCtrl
		case "a", "m":
			mods |= ModAlt
		case "s":
			mods |= ModShift
		case "d":
			mods |= ModMeta
		case "":
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	switch strings.ToLower(keyPart) {
	case "space":
		return NewRuneEvent(' ', mods), nil
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "gt":
		return NewRuneEvent('>', mods), nil
	case "bar":
		return NewRuneEvent('|', mods), nil
	case "nl":
		return NewRuneEvent('\n', mods), nil
	}

	if k := FromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		// For Ctrl combinations, use lowercase
		if mods.HasCtrl() {
			r = unicode.ToLower(r)
		}
		return NewRuneEvent(r, mods), nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}
