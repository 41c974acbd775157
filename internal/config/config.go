package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/hexim/internal/input/entry"
	"github.com/dshills/hexim/internal/renderer/core"
)

// Config holds every hexim setting.
type Config struct {
	Editor    EditorConfig    `toml:"editor"`
	Logging   LoggingConfig   `toml:"logging"`
	Clipboard ClipboardConfig `toml:"clipboard"`
	Watch     WatchConfig     `toml:"watch"`
	Script    ScriptConfig    `toml:"script"`
	UI        UIConfig        `toml:"ui"`
}

// EditorConfig holds editing settings.
type EditorConfig struct {
	// InputMode is the initial value entry mode, "hex" or "ascii".
	InputMode string `toml:"input_mode"`

	// UndoLimit caps the undo history. Zero keeps every snapshot.
	UndoLimit int `toml:"undo_limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum level written: debug, info, warn or error.
	Level string `toml:"level"`

	// File receives log output. The terminal is in use by the editor, so
	// an empty value discards logs.
	File string `toml:"file"`
}

// ClipboardConfig holds system clipboard settings.
type ClipboardConfig struct {
	Enabled bool `toml:"enabled"`
}

// WatchConfig holds external change detection settings.
type WatchConfig struct {
	Enabled  bool     `toml:"enabled"`
	Debounce Duration `toml:"debounce"`
}

// ScriptConfig holds Lua settings.
type ScriptConfig struct {
	// Init is a Lua file run once the file is open.
	Init string `toml:"init"`

	// Timeout bounds each script run. Zero disables the bound.
	Timeout Duration `toml:"timeout"`
}

// UIConfig holds display settings.
type UIConfig struct {
	// OffsetColor colors the offset column and header.
	OffsetColor string `toml:"offset_color"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			InputMode: "hex",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Clipboard: ClipboardConfig{
			Enabled: true,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: Duration(100 * time.Millisecond),
		},
		Script: ScriptConfig{
			Timeout: Duration(2 * time.Second),
		},
		UI: UIConfig{
			OffsetColor: "red",
		},
	}
}

var logLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if _, ok := entry.ParseInputMode(c.Editor.InputMode); !ok {
		errs = append(errs, &ValidationError{Path: "editor.input_mode", Message: `must be "hex" or "ascii"`, Value: c.Editor.InputMode})
	}
	if c.Editor.UndoLimit < 0 {
		errs = append(errs, &ValidationError{Path: "editor.undo_limit", Message: "must not be negative", Value: c.Editor.UndoLimit})
	}
	if !logLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, &ValidationError{Path: "logging.level", Message: "must be debug, info, warn or error", Value: c.Logging.Level})
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, &ValidationError{Path: "watch.debounce", Message: "must not be negative", Value: c.Watch.Debounce})
	}
	if c.Script.Timeout < 0 {
		errs = append(errs, &ValidationError{Path: "script.timeout", Message: "must not be negative", Value: c.Script.Timeout})
	}
	if _, err := core.ParseColor(c.UI.OffsetColor); err != nil {
		errs = append(errs, &ValidationError{Path: "ui.offset_color", Message: err.Error(), Value: c.UI.OffsetColor})
	}

	return errors.Join(errs...)
}

// InputMode returns the parsed editor input mode, Hex when invalid.
func (c *Config) InputMode() entry.InputMode {
	m, _ := entry.ParseInputMode(c.Editor.InputMode)
	return m
}

// OffsetColor returns the parsed offset color, red when invalid.
func (c *Config) OffsetColor() core.Color {
	color, err := core.ParseColor(c.UI.OffsetColor)
	if err != nil {
		return core.ColorRed
	}
	return color
}

// Duration is a time.Duration written as a string ("250ms") in TOML.
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	return time.Duration(d).String()
}
