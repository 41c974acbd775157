package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/hexim/internal/input/entry"
	"github.com/dshills/hexim/internal/renderer/core"
	"github.com/dshills/hexim/internal/vfs"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func newLoader(files map[string]string, vars map[string]string) *Loader {
	mfs := vfs.NewMemFS()
	for path, content := range files {
		mfs.AddFile(path, []byte(content))
	}
	return NewLoader(WithFS(mfs), WithEnv(env(vars)))
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.InputMode() != entry.Hex {
		t.Errorf("InputMode = %v, want Hex", cfg.InputMode())
	}
	if !cfg.OffsetColor().Equals(core.ColorRed) {
		t.Errorf("OffsetColor = %v, want red", cfg.OffsetColor())
	}
	if cfg.Watch.Debounce.Std() != 100*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 100ms", cfg.Watch.Debounce)
	}
}

func TestLoadFile(t *testing.T) {
	const file = `
[editor]
input_mode = "ascii"
undo_limit = 50

[logging]
level = "debug"
file = "/tmp/hexim.log"

[watch]
debounce = "250ms"

[script]
init = "~/init.lua"

[ui]
offset_color = "#00ff00"
`
	l := newLoader(map[string]string{"/cfg.toml": file}, nil)
	cfg, err := l.Load("/cfg.toml")
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if cfg.InputMode() != entry.Ascii {
		t.Errorf("InputMode = %v, want Ascii", cfg.InputMode())
	}
	if cfg.Editor.UndoLimit != 50 {
		t.Errorf("UndoLimit = %d, want 50", cfg.Editor.UndoLimit)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.File != "/tmp/hexim.log" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Watch.Debounce.Std() != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 250ms", cfg.Watch.Debounce)
	}
	// Untouched keys keep their defaults.
	if !cfg.Watch.Enabled || !cfg.Clipboard.Enabled {
		t.Error("defaults lost for keys absent from the file")
	}
	if cfg.Script.Timeout.Std() != 2*time.Second {
		t.Errorf("Script.Timeout = %v, want 2s", cfg.Script.Timeout)
	}
	if !cfg.OffsetColor().Equals(core.ColorFromRGB(0, 255, 0)) {
		t.Errorf("OffsetColor = %v", cfg.OffsetColor())
	}
}

func TestLoadMissingFile(t *testing.T) {
	l := newLoader(nil, nil)

	if _, err := l.Load("/missing.toml"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Load explicit missing = %v, want ErrFileNotFound", err)
	}

	t.Setenv("XDG_CONFIG_HOME", "/nowhere")
	cfg, err := l.Load("")
	if err != nil {
		t.Fatalf("Load default missing = %v", err)
	}
	if cfg.Editor.InputMode != "hex" {
		t.Errorf("InputMode = %q, want defaults", cfg.Editor.InputMode)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultPath(); got != "/xdg/hexim/config.toml" {
		t.Errorf("DefaultPath = %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantLine int
		wantMsg  string
	}{
		{"unknown key", "[editor]\ntab_size = 4\n", 2, "unknown key editor.tab_size"},
		{"bad syntax", "[editor\n", 1, ""},
		{"wrong type", "[editor]\nundo_limit = \"many\"\n", 0, ""},
		{"bad duration", "[watch]\ndebounce = \"soon\"\n", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Parse(Default(), "cfg.toml", []byte(tt.data))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse error = %v, want *ParseError", err)
			}
			if tt.wantLine > 0 && pe.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d (%v)", pe.Line, tt.wantLine, err)
			}
			if tt.wantMsg != "" && pe.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", pe.Message, tt.wantMsg)
			}
			if !strings.Contains(err.Error(), "cfg.toml") {
				t.Errorf("error %q does not name the file", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
	}{
		{"input mode", func(c *Config) { c.Editor.InputMode = "octal" }, "editor.input_mode"},
		{"undo limit", func(c *Config) { c.Editor.UndoLimit = -1 }, "editor.undo_limit"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"debounce", func(c *Config) { c.Watch.Debounce = Duration(-time.Second) }, "watch.debounce"},
		{"timeout", func(c *Config) { c.Script.Timeout = Duration(-time.Second) }, "script.timeout"},
		{"color", func(c *Config) { c.UI.OffsetColor = "chartreuse" }, "ui.offset_color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("Validate = %v, want ErrValidationFailed", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Path != tt.path {
				t.Errorf("ValidationError = %v, want path %s", err, tt.path)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Editor.InputMode = "octal"
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate = nil")
	}
	for _, path := range []string{"editor.input_mode", "logging.level"} {
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error %q missing %s", err, path)
		}
	}
}
