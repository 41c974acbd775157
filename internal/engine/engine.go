package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/hexim/internal/engine/buffer"
	"github.com/dshills/hexim/internal/engine/cursor"
	"github.com/dshills/hexim/internal/engine/history"
	"github.com/dshills/hexim/internal/vfs"
)

const defaultFilePerm fs.FileMode = 0644

// Logger is the logging surface the model needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Snapshot is one recorded state: the bytes and the caret. Data is never
// shared with the live buffer.
type Snapshot struct {
	Data  []byte
	Caret cursor.Caret
}

// Model is the edit model for one file.
type Model struct {
	path    string
	buffer  *buffer.Buffer
	caret   cursor.Caret
	history *history.History[Snapshot]

	fs        vfs.VFS
	logger    Logger
	undoLimit int
	initData  []byte
}

// New creates an empty model with an Offset(0, 0) caret.
func New(opts ...Option) *Model {
	m := &Model{
		buffer: buffer.New(nil),
		caret:  cursor.Offset(cursor.NewBounded(0, 0)),
		fs:     vfs.NewOSFS(),
		logger: nopLogger{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.history = history.New[Snapshot](m.undoLimit)

	m.load(m.initData)
	m.initData = nil
	return m
}

// Open loads the file at path. A missing file yields an empty buffer; the
// file is created by the first save.
func (m *Model) Open(path string) error {
	data, err := m.fs.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		m.logger.Info("new file %q", path)
		data = nil
	default:
		return fmt.Errorf("open %q: %w", path, err)
	}

	if info, statErr := m.fs.Stat(path); statErr == nil && info.IsDir() {
		return fmt.Errorf("open %q: %w", path, ErrIsDirectory)
	}

	m.path = path
	m.load(data)
	m.logger.Debug("opened %q (%d bytes)", path, len(data))
	return nil
}

func (m *Model) load(data []byte) {
	m.buffer.Reset(data)
	m.caret = cursor.Offset(cursor.NewBounded(0, cursor.SaturatingSub(m.buffer.Len(), 1)))
	m.history.Init(m.current())
}

// Save writes the buffer to the model's path.
func (m *Model) Save() error {
	return m.SaveAs(m.path)
}

// SaveAs writes the buffer to path. The data goes to a uniquely named
// temporary file next to the target which is then renamed over it, so a
// failed write leaves the original intact. The model's own path does not
// change.
func (m *Model) SaveAs(path string) error {
	if path == "" {
		return ErrNoPath
	}

	perm := defaultFilePerm
	if info, err := m.fs.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("save %q: %w", path, ErrIsDirectory)
		}
		perm = info.Mode().Perm()
	}

	tmp := tempName(path)
	if err := m.fs.WriteFile(tmp, m.buffer.View(), perm); err != nil {
		return fmt.Errorf("save %q: %w", path, err)
	}
	if err := m.fs.Rename(tmp, path); err != nil {
		if rmErr := m.fs.Remove(tmp); rmErr != nil {
			m.logger.Warn("remove temp file %q: %v", tmp, rmErr)
		}
		return fmt.Errorf("save %q: %w", path, err)
	}

	m.logger.Info("wrote %d bytes to %q", m.buffer.Len(), path)
	return nil
}

// tempName returns a hidden sibling of path that no other save will pick.
func tempName(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")
}

// IsModified compares the buffer with the file on disk. A missing file
// counts as empty.
func (m *Model) IsModified() (bool, error) {
	if m.path == "" {
		return !m.buffer.IsEmpty(), nil
	}
	disk, err := m.fs.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return !m.buffer.IsEmpty(), nil
		}
		return false, fmt.Errorf("read %q: %w", m.path, err)
	}
	return !m.buffer.Equal(disk), nil
}

// Edit replaces the bytes in [start, end) with repl. start and end are
// swapped when out of order. After the splice the caret is re-bounded for
// its current kind; its kind never changes here. On error the buffer and
// caret are unchanged.
func (m *Model) Edit(start, end int, repl []byte) error {
	if start > end {
		start, end = end, start
	}
	if err := m.buffer.Splice(start, end, repl); err != nil {
		return &EditError{Op: "edit", Start: start, End: end, Len: m.buffer.Len(), Err: err}
	}
	m.caret.Rebound(m.buffer.Len())
	return nil
}

// Path returns the file path, empty for an unnamed model.
func (m *Model) Path() string {
	return m.path
}

// SetPath changes the file path used by Save.
func (m *Model) SetPath(path string) {
	m.path = path
}

// Bytes returns the buffer contents without copying. The caller must not
// modify the slice or keep it across edits.
func (m *Model) Bytes() []byte {
	return m.buffer.View()
}

// Len returns the buffer length.
func (m *Model) Len() int {
	return m.buffer.Len()
}

// ByteAt returns the byte at offset i.
func (m *Model) ByteAt(i int) (byte, bool) {
	return m.buffer.At(i)
}

// Slice returns a copy of the bytes in [lo, hi).
func (m *Model) Slice(lo, hi int) ([]byte, error) {
	return m.buffer.Slice(lo, hi)
}

// Caret returns the current caret.
func (m *Model) Caret() cursor.Caret {
	return m.caret
}

// Index returns the representative caret position.
func (m *Model) Index() int {
	return m.caret.Index()
}

// SetIndex moves the caret, clamped to the buffer.
func (m *Model) SetIndex(i int) {
	m.caret.SetIndex(i)
}

// IncIndex moves the caret forward by n.
func (m *Model) IncIndex(n int) {
	m.caret.IncIndex(n)
}

// DecIndex moves the caret backward by n.
func (m *Model) DecIndex(n int) {
	m.caret.DecIndex(n)
}

// ToNormal switches the caret to Offset.
func (m *Model) ToNormal() {
	m.caret = m.caret.ToNormal()
}

// ToInsert switches the caret to Index. On an empty buffer the extra slot
// past the end would point beyond the data, so the caret is re-bounded.
func (m *Model) ToInsert() {
	m.caret = m.caret.ToInsert()
	m.caret.Rebound(m.buffer.Len())
}

// ToReplace switches the caret to Replace.
func (m *Model) ToReplace() {
	m.caret = m.caret.ToReplace()
}

// ToVisual switches the caret to Visual.
func (m *Model) ToVisual() {
	m.caret = m.caret.ToVisual()
}

// Pivot swaps the endpoints of a Visual caret.
func (m *Model) Pivot() bool {
	return m.caret.Pivot()
}

// Selection returns the normalized byte range [lo, hi] of a Visual caret.
// ok is false for other caret kinds.
func (m *Model) Selection() (lo, hi int, ok bool) {
	if m.caret.Kind() != cursor.KindVisual {
		return 0, 0, false
	}
	lo, hi = m.caret.Range()
	return lo, hi, true
}

// Snapshot records the current state as one undo step.
func (m *Model) Snapshot() {
	m.history.Snapshot(m.current())
}

// Undo restores the previous snapshot. It reports false when only the
// floor remains.
func (m *Model) Undo() bool {
	snap, ok := m.history.Undo()
	if !ok {
		return false
	}
	m.restore(snap)
	return true
}

// Redo restores the next undone snapshot.
func (m *Model) Redo() bool {
	snap, ok := m.history.Redo()
	if !ok {
		return false
	}
	m.restore(snap)
	return true
}

// CanUndo reports whether Undo would succeed.
func (m *Model) CanUndo() bool {
	return m.history.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (m *Model) CanRedo() bool {
	return m.history.CanRedo()
}

func (m *Model) current() Snapshot {
	return Snapshot{Data: m.buffer.Bytes(), Caret: m.caret}
}

func (m *Model) restore(s Snapshot) {
	m.buffer.Reset(s.Data)
	m.caret = s.Caret
}

// Equal reports whether the buffer holds exactly data.
func (m *Model) Equal(data []byte) bool {
	return m.buffer.Equal(data)
}
