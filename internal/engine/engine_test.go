package engine

import (
	"bytes"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/dshills/hexim/internal/engine/buffer"
	"github.com/dshills/hexim/internal/engine/cursor"
	"github.com/dshills/hexim/internal/vfs"
)

func newMemModel(t *testing.T, path string, content []byte) (*Model, *vfs.MemFS) {
	t.Helper()
	mfs := vfs.NewMemFS()
	if content != nil {
		mfs.AddFile(path, content)
	}
	m := New(WithFS(mfs))
	if err := m.Open(path); err != nil {
		t.Fatalf("Open(%q): %v", path, err)
	}
	return m, mfs
}

func TestNew(t *testing.T) {
	m := New()
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	c := m.Caret()
	if c.Kind() != cursor.KindOffset || c.Index() != 0 || c.Position().Max() != 0 {
		t.Errorf("Caret() = %v, want offset(0/0)", c)
	}
}

func TestOpen(t *testing.T) {
	m, _ := newMemModel(t, "/data.bin", []byte{1, 2, 3, 4})

	if !m.Equal([]byte{1, 2, 3, 4}) {
		t.Errorf("Bytes() = %v", m.Bytes())
	}
	if got := m.Caret().Position().Max(); got != 3 {
		t.Errorf("caret max = %d, want 3", got)
	}
	if m.CanUndo() {
		t.Error("CanUndo() = true right after Open")
	}
}

func TestOpenMissingFile(t *testing.T) {
	m, mfs := newMemModel(t, "/new.bin", nil)
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	if mfs.Exists("/new.bin") {
		t.Error("Open created the file")
	}

	modified, err := m.IsModified()
	if err != nil || modified {
		t.Errorf("IsModified() = %v, %v, want false, nil", modified, err)
	}
}

func TestSaveAtomic(t *testing.T) {
	m, mfs := newMemModel(t, "/data.bin", []byte{1, 2})

	m.ToInsert()
	if err := m.Edit(2, 2, []byte{3}); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	modified, err := m.IsModified()
	if err != nil || !modified {
		t.Fatalf("IsModified() = %v, %v, want true, nil", modified, err)
	}

	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, _ := mfs.ReadFile("/data.bin")
	if !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Errorf("file = %v, want [1 2 3]", data)
	}
	for _, p := range mfs.Paths() {
		if strings.HasSuffix(p, ".tmp") {
			t.Errorf("temp file left behind: %s", p)
		}
	}

	modified, err = m.IsModified()
	if err != nil || modified {
		t.Errorf("IsModified() after save = %v, %v, want false, nil", modified, err)
	}
}

func TestSaveFailureKeepsOriginal(t *testing.T) {
	m, mfs := newMemModel(t, "/data.bin", []byte{1})
	m.ToInsert()
	_ = m.Edit(0, 0, []byte{9})

	boom := errors.New("disk full")
	mfs.FailWrites(boom)
	err := m.Save()
	if !errors.Is(err, boom) {
		t.Fatalf("Save error = %v, want %v", err, boom)
	}
	data, _ := mfs.ReadFile("/data.bin")
	if !bytes.Equal(data, []byte{1}) {
		t.Errorf("original file changed to %v", data)
	}
}

func TestSaveAsKeepsPath(t *testing.T) {
	m, mfs := newMemModel(t, "/a.bin", []byte{7})
	if err := m.SaveAs("/b.bin"); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if !mfs.Exists("/b.bin") {
		t.Error("/b.bin not written")
	}
	if m.Path() != "/a.bin" {
		t.Errorf("Path() = %q, want /a.bin", m.Path())
	}
}

func TestSaveWithoutPath(t *testing.T) {
	m := New(WithFS(vfs.NewMemFS()))
	if err := m.Save(); !errors.Is(err, ErrNoPath) {
		t.Errorf("Save() error = %v, want ErrNoPath", err)
	}
}

func TestIsModifiedReadError(t *testing.T) {
	m, mfs := newMemModel(t, "/a.bin", []byte{7})
	_ = mfs.Remove("/a.bin")
	mfs.AddFile("/a.bin/inner", nil) // /a.bin is now a directory

	if _, err := m.IsModified(); err == nil {
		t.Error("IsModified() error = nil, want read error")
	}
}

func TestEditRebound(t *testing.T) {
	tests := []struct {
		name    string
		toMode  func(m *Model)
		start   int
		end     int
		repl    []byte
		wantMax int
	}{
		{"index grows", (*Model).ToInsert, 0, 0, []byte{1, 2}, 6},
		{"offset shrinks", (*Model).ToNormal, 0, 2, nil, 1},
		{"replace overwrite", (*Model).ToReplace, 1, 2, []byte{0xff}, 3},
		{"visual delete all", (*Model).ToVisual, 0, 4, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(WithData([]byte{0, 1, 2, 3}))
			tt.toMode(m)
			kind := m.Caret().Kind()

			if err := m.Edit(tt.start, tt.end, tt.repl); err != nil {
				t.Fatalf("Edit: %v", err)
			}
			if m.Caret().Kind() != kind {
				t.Errorf("caret kind changed from %v to %v", kind, m.Caret().Kind())
			}
			start, end := m.Caret().Endpoints()
			if start.Max() != tt.wantMax || end.Max() != tt.wantMax {
				t.Errorf("caret max = %d/%d, want %d", start.Max(), end.Max(), tt.wantMax)
			}
		})
	}
}

func TestEditOutOfRange(t *testing.T) {
	m := New(WithData([]byte{0, 1}))
	err := m.Edit(1, 3, []byte{9})

	var editErr *EditError
	if !errors.As(err, &editErr) {
		t.Fatalf("Edit error = %v, want *EditError", err)
	}
	if !errors.Is(err, buffer.ErrOutOfRange) {
		t.Errorf("Edit error does not wrap ErrOutOfRange: %v", err)
	}
	if !m.Equal([]byte{0, 1}) {
		t.Errorf("buffer changed to %v", m.Bytes())
	}
}

func TestEditSwapsBounds(t *testing.T) {
	m := New(WithData([]byte{0, 1, 2, 3}))
	if err := m.Edit(3, 1, nil); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if !m.Equal([]byte{0, 3}) {
		t.Errorf("Bytes() = %v, want [0 3]", m.Bytes())
	}
}

func TestUndoRedo(t *testing.T) {
	m := New(WithData([]byte{0xaa}))
	m.ToInsert()
	m.SetIndex(1)

	_ = m.Edit(1, 1, []byte{0xbb})
	m.IncIndex(1)
	m.Snapshot()

	_ = m.Edit(2, 2, []byte{0xcc})
	m.IncIndex(1)
	m.Snapshot()

	if !m.Undo() {
		t.Fatal("first Undo failed")
	}
	if !m.Equal([]byte{0xaa, 0xbb}) || m.Index() != 2 {
		t.Errorf("after undo = %v idx %d, want [aa bb] idx 2", m.Bytes(), m.Index())
	}

	if !m.Undo() {
		t.Fatal("second Undo failed")
	}
	if !m.Equal([]byte{0xaa}) {
		t.Errorf("after second undo = %v, want [aa]", m.Bytes())
	}
	if m.Caret().Kind() != cursor.KindOffset {
		t.Errorf("floor caret kind = %v, want offset", m.Caret().Kind())
	}
	if m.Undo() {
		t.Error("Undo past the floor succeeded")
	}

	if !m.Redo() || !m.Redo() {
		t.Fatal("Redo failed")
	}
	if !m.Equal([]byte{0xaa, 0xbb, 0xcc}) || m.Index() != 3 {
		t.Errorf("after redo = %v idx %d", m.Bytes(), m.Index())
	}
	if m.Redo() {
		t.Error("Redo with empty recall succeeded")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	m := New(WithData([]byte{1, 2, 3}))
	m.ToReplace()
	_ = m.Edit(0, 1, []byte{9})
	m.Snapshot()
	_ = m.Edit(1, 2, []byte{8}) // not snapshotted

	m.Undo()
	if !m.Equal([]byte{1, 2, 3}) {
		t.Errorf("floor = %v, want [1 2 3]", m.Bytes())
	}
	m.Redo()
	if !m.Equal([]byte{9, 2, 3}) {
		t.Errorf("redo = %v, want [9 2 3]", m.Bytes())
	}
}

func TestUndoLimit(t *testing.T) {
	m := New(WithData([]byte{0}), WithUndoLimit(2))
	m.ToReplace()
	for i := byte(1); i <= 4; i++ {
		_ = m.Edit(0, 1, []byte{i})
		m.Snapshot()
	}
	undos := 0
	for m.Undo() {
		undos++
	}
	if undos != 1 {
		t.Errorf("undos = %d, want 1", undos)
	}
	if !m.Equal([]byte{3}) {
		t.Errorf("oldest retained = %v, want [3]", m.Bytes())
	}
}

func TestToInsertBounds(t *testing.T) {
	m := New()
	m.ToInsert()
	if got := m.Caret().Position().Max(); got != 0 {
		t.Errorf("empty buffer: insert max = %d, want 0", got)
	}

	m = New(WithData([]byte{1, 2, 3}))
	m.SetIndex(2)
	m.ToInsert()
	c := m.Caret()
	if c.Kind() != cursor.KindIndex || c.Index() != 2 || c.Position().Max() != 3 {
		t.Errorf("Caret() = %v, want index(2/3)", c)
	}
}

func TestSelection(t *testing.T) {
	m := New(WithData([]byte{0, 1, 2, 3, 4, 5}))
	if _, _, ok := m.Selection(); ok {
		t.Error("Selection() ok in normal mode")
	}

	m.SetIndex(4)
	m.ToVisual()
	m.DecIndex(3)
	lo, hi, ok := m.Selection()
	if !ok || lo != 1 || hi != 4 {
		t.Errorf("Selection() = %d, %d, %v, want 1, 4, true", lo, hi, ok)
	}

	m.Pivot()
	if m.Index() != 4 {
		t.Errorf("Index() after Pivot = %d, want 4", m.Index())
	}
}

func TestOpenDirectory(t *testing.T) {
	mfs := vfs.NewMemFS()
	mfs.AddFile("/dir/file", nil)
	m := New(WithFS(mfs))

	err := m.Open("/dir")
	if err == nil {
		t.Fatal("Open(dir) succeeded")
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) && !errors.Is(err, ErrIsDirectory) {
		t.Errorf("Open(dir) error = %v", err)
	}
}

// Edit agrees with a reference splice for every in-range edit.
func TestEditMatchesSpliceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "data")
		start := rapid.IntRange(0, len(data)).Draw(t, "start")
		end := rapid.IntRange(start, len(data)).Draw(t, "end")
		repl := rapid.SliceOfN(rapid.Byte(), 0, 16).Draw(t, "repl")

		m := New(WithData(data))
		err := m.Edit(start, end, repl)
		assert.NoError(t, err)

		want := make([]byte, 0, len(data)+len(repl))
		want = append(want, data[:start]...)
		want = append(want, repl...)
		want = append(want, data[end:]...)
		assert.Equal(t, want, append([]byte{}, m.Bytes()...))

		c := m.Caret()
		assert.LessOrEqual(t, c.Index(), c.Position().Max())
	})
}
