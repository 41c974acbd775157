// Package watcher reports changes made to the open file by other programs.
//
// Files are watched through their parent directory, so the watch survives
// editors (including this one) that save by renaming a temporary file over
// the original. Events for other files in the directory are dropped.
// DebouncedWatcher coalesces bursts of events and suppresses the echo of
// the editor's own saves.
package watcher

import (
	"errors"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("path is already being watched")
	ErrNotWatching     = errors.New("path is not being watched")
	ErrPathNotExist    = errors.New("path does not exist")
)

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates the file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file was written to.
	OpWrite
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed away.
	OpRename
	// OpChmod indicates file permissions were changed.
	OpChmod
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	case OpChmod:
		return "CHMOD"
	default:
		return "UNKNOWN"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event represents a change to a watched file.
type Event struct {
	// Path is the absolute path of the file.
	Path string

	// Op is the operation that occurred. Debounced events may combine
	// several operations.
	Op Op

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Removed reports whether the file is gone after the event.
func (e Event) Removed() bool {
	return (e.Op.Has(OpRemove) || e.Op.Has(OpRename)) && !e.Op.Has(OpCreate)
}

// Watcher monitors files for changes.
type Watcher interface {
	// Watch starts watching a file. The file itself need not exist yet,
	// but its directory must.
	Watch(path string) error

	// Unwatch stops watching a file.
	Unwatch(path string) error

	// Events returns the channel of file change events. The channel is
	// closed when the watcher is closed.
	Events() <-chan Event

	// Errors returns the channel of watcher errors. The channel is closed
	// when the watcher is closed.
	Errors() <-chan error

	// Close stops the watcher and releases resources.
	Close() error
}

// Config holds watcher configuration options.
type Config struct {
	// DebounceDelay is the delay before delivering events.
	// Events within this window are coalesced.
	// Default: 100ms
	DebounceDelay time.Duration

	// BufferSize is the size of the event and error channels.
	// Default: 100
	BufferSize int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
		BufferSize:    100,
	}
}

// Option configures a watcher.
type Option func(*Config)

// WithDebounceDelay sets the debounce delay.
func WithDebounceDelay(d time.Duration) Option {
	return func(c *Config) {
		c.DebounceDelay = d
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) Option {
	return func(c *Config) {
		c.BufferSize = size
	}
}

// New creates a debounced fsnotify watcher.
func New(opts ...Option) (*DebouncedWatcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	inner, err := NewFSNotifyWatcher(config)
	if err != nil {
		return nil, err
	}
	return NewDebouncedWatcher(inner, config.DebounceDelay), nil
}
