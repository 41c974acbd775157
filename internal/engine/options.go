package engine

import "github.com/dshills/hexim/internal/vfs"

// Option configures a Model during creation.
type Option func(*Model)

// WithFS sets the file system used by Open, Save and IsModified.
func WithFS(fs vfs.VFS) Option {
	return func(m *Model) {
		if fs != nil {
			m.fs = fs
		}
	}
}

// WithUndoLimit caps the number of undo snapshots kept. Zero or a negative
// value means unlimited.
func WithUndoLimit(limit int) Option {
	return func(m *Model) {
		if limit > 0 {
			m.undoLimit = limit
		}
	}
}

// WithLogger sets the logger for file operations.
func WithLogger(l Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithData seeds the model with in-memory content and records it as the
// history floor, without touching the file system.
func WithData(data []byte) Option {
	return func(m *Model) {
		m.initData = data
	}
}
