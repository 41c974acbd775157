package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/hexim/internal/vfs"
)

// Loader reads the config file and the environment.
type Loader struct {
	fs        vfs.VFS
	lookupEnv func(string) (string, bool)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFS sets the file system the config file is read from.
func WithFS(fs vfs.VFS) LoaderOption {
	return func(l *Loader) {
		if fs != nil {
			l.fs = fs
		}
	}
}

// WithEnv sets the environment lookup, os.LookupEnv by default.
func WithEnv(lookup func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		if lookup != nil {
			l.lookupEnv = lookup
		}
	}
}

// NewLoader creates a loader reading from the OS.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:        vfs.NewOSFS(),
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load builds the configuration from defaults, the file at path and the
// environment, then validates it. An empty path means DefaultPath, which
// may be missing; an explicit path must exist.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := l.loadFile(cfg, path, explicit); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, l.lookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) loadFile(cfg *Config, path string, required bool) error {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if required {
				return fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(cfg, path, data)
}

// Parse decodes TOML data over cfg. Keys absent from data keep their
// current values; unknown keys are an error.
func Parse(cfg *Config, source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return parseError(source, err)
	}
	return nil
}

// parseError converts go-toml errors into a ParseError with a position.
func parseError(source string, err error) error {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var strict *toml.StrictMissingError
	var decode *toml.DecodeError
	switch {
	case errors.As(err, &strict) && len(strict.Errors) > 0:
		first := strict.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Message = "unknown key " + strings.Join(first.Key(), ".")
	case errors.As(err, &decode):
		pe.Line, pe.Column = decode.Position()
		pe.Message = decode.Error()
	}
	return pe
}

// DefaultPath returns $XDG_CONFIG_HOME/hexim/config.toml, falling back to
// the platform config directory. It is empty when neither is known.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "hexim", "config.toml")
}
