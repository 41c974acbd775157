package buffer

import (
	"bytes"
	"fmt"
)

// Buffer is a growable byte sequence with splice editing.
// It is not safe for concurrent use.
type Buffer struct {
	data []byte
}

// New creates a buffer holding a copy of data.
func New(data []byte) *Buffer {
	return &Buffer{data: bytes.Clone(data)}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// IsEmpty reports whether the buffer has no bytes.
func (b *Buffer) IsEmpty() bool {
	return len(b.data) == 0
}

// Bytes returns a copy of the contents.
func (b *Buffer) Bytes() []byte {
	return bytes.Clone(b.data)
}

// View returns the underlying bytes without copying.
// The caller must not modify the result or keep it across edits.
func (b *Buffer) View() []byte {
	return b.data
}

// At returns the byte at offset i.
func (b *Buffer) At(i int) (byte, bool) {
	if i < 0 || i >= len(b.data) {
		return 0, false
	}
	return b.data[i], true
}

// Slice returns a copy of the bytes in [lo, hi). The bounds are swapped
// when lo > hi.
func (b *Buffer) Slice(lo, hi int) ([]byte, error) {
	lo, hi = order(lo, hi)
	if lo < 0 || hi > len(b.data) {
		return nil, fmt.Errorf("slice [%d, %d) of %d bytes: %w", lo, hi, len(b.data), ErrOutOfRange)
	}
	return bytes.Clone(b.data[lo:hi]), nil
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	return New(b.data)
}

// Equal reports whether the buffer holds exactly data.
func (b *Buffer) Equal(data []byte) bool {
	return bytes.Equal(b.data, data)
}

// Reset replaces the whole contents with a copy of data.
func (b *Buffer) Reset(data []byte) {
	b.data = bytes.Clone(data)
}

// Splice replaces the bytes in [start, end) with repl. The bounds are
// swapped when start > end. If end exceeds Len the buffer is left untouched
// and ErrOutOfRange is returned.
func (b *Buffer) Splice(start, end int, repl []byte) error {
	start, end = order(start, end)
	if start < 0 || end > len(b.data) {
		return fmt.Errorf("splice [%d, %d) of %d bytes: %w", start, end, len(b.data), ErrOutOfRange)
	}

	out := make([]byte, 0, len(b.data)-(end-start)+len(repl))
	out = append(out, b.data[:start]...)
	out = append(out, repl...)
	out = append(out, b.data[end:]...)
	b.data = out
	return nil
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
