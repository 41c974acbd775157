// Package command parses the editor's ex-style command line.
//
// The language is small:
//
//	q            quit, refused when there are unsaved changes
//	q!           quit without saving
//	w [path]     save, or save a copy to path
//	wq, x        save and quit
//	lua <code>   run a Lua chunk against the buffer
//	source <p>   run a Lua file against the buffer
//	<offset>     jump; 0b.., 08.. and 0x.. select base 2, 8 and 16
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownCommand is returned for text that is neither a command nor an
// offset.
var ErrUnknownCommand = errors.New("no such command")

// Kind identifies a parsed command.
type Kind uint8

const (
	Quit Kind = iota
	ForceQuit
	Save
	SaveAs
	SaveAndQuit
	Jump
	Lua
	Source
)

var kindNames = [...]string{
	Quit:        "quit",
	ForceQuit:   "force-quit",
	Save:        "save",
	SaveAs:      "save-as",
	SaveAndQuit: "save-and-quit",
	Jump:        "jump",
	Lua:         "lua",
	Source:      "source",
}

// String returns the command name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Command is one parsed command line.
type Command struct {
	Kind Kind

	// Path is set for SaveAs and Source.
	Path string

	// Offset is set for Jump.
	Offset int

	// Code is set for Lua.
	Code string
}

// Parse interprets the text typed after ':'.
func Parse(text string) (Command, error) {
	text = strings.TrimSpace(text)

	name, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "q":
		if arg == "" {
			return Command{Kind: Quit}, nil
		}
	case "q!":
		if arg == "" {
			return Command{Kind: ForceQuit}, nil
		}
	case "w":
		if arg == "" {
			return Command{Kind: Save}, nil
		}
		return Command{Kind: SaveAs, Path: arg}, nil
	case "wq", "x":
		if arg == "" {
			return Command{Kind: SaveAndQuit}, nil
		}
	case "lua":
		if arg != "" {
			return Command{Kind: Lua, Code: arg}, nil
		}
		return Command{}, errors.New("lua: missing code")
	case "source", "so":
		if arg != "" {
			return Command{Kind: Source, Path: arg}, nil
		}
		return Command{}, errors.New("source: missing file name")
	}

	if offset, ok := parseOffset(text); ok {
		return Command{Kind: Jump, Offset: offset}, nil
	}
	return Command{}, ErrUnknownCommand
}

// parseOffset reads a non-negative offset. The "08" prefix for octal
// mirrors the other two-character prefixes.
func parseOffset(s string) (int, bool) {
	base := 10
	switch {
	case strings.HasPrefix(s, "0b"):
		s, base = s[2:], 2
	case strings.HasPrefix(s, "08"):
		s, base = s[2:], 8
	case strings.HasPrefix(s, "0x"):
		s, base = s[2:], 16
	}
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	v, err := strconv.ParseUint(s, base, strconv.IntSize-1)
	if err != nil {
		return 0, false
	}
	return int(v), true
}
