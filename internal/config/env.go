package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// envSetting maps one variable onto a field.
type envSetting struct {
	name string
	path string
	set  func(c *Config, v string) error
}

var envSettings = []envSetting{
	{"HEXIM_INPUT_MODE", "editor.input_mode", func(c *Config, v string) error {
		c.Editor.InputMode = v
		return nil
	}},
	{"HEXIM_UNDO_LIMIT", "editor.undo_limit", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		c.Editor.UndoLimit = n
		return err
	}},
	{"HEXIM_LOG_LEVEL", "logging.level", func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	}},
	{"HEXIM_LOG_FILE", "logging.file", func(c *Config, v string) error {
		c.Logging.File = v
		return nil
	}},
	{"HEXIM_CLIPBOARD", "clipboard.enabled", func(c *Config, v string) (err error) {
		c.Clipboard.Enabled, err = parseBool(v)
		return err
	}},
	{"HEXIM_WATCH", "watch.enabled", func(c *Config, v string) (err error) {
		c.Watch.Enabled, err = parseBool(v)
		return err
	}},
	{"HEXIM_WATCH_DEBOUNCE", "watch.debounce", func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		c.Watch.Debounce = Duration(d)
		return err
	}},
	{"HEXIM_SCRIPT_INIT", "script.init", func(c *Config, v string) error {
		c.Script.Init = v
		return nil
	}},
	{"HEXIM_SCRIPT_TIMEOUT", "script.timeout", func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		c.Script.Timeout = Duration(d)
		return err
	}},
	{"HEXIM_OFFSET_COLOR", "ui.offset_color", func(c *Config, v string) error {
		c.UI.OffsetColor = v
		return nil
	}},
}

// applyEnv overrides cfg from the environment. Empty values are treated as
// set, not as unset.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error
	for _, s := range envSettings {
		v, ok := lookup(s.name)
		if !ok {
			continue
		}
		if err := s.set(cfg, strings.TrimSpace(v)); err != nil {
			errs = append(errs, fmt.Errorf("%s (%s): %w", s.name, s.path, err))
		}
	}
	return errors.Join(errs...)
}

// parseBool accepts the spellings people put in shell profiles.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
