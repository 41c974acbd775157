package buffer

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewCopies(t *testing.T) {
	src := []byte{1, 2, 3}
	b := New(src)
	src[0] = 9
	if !b.Equal([]byte{1, 2, 3}) {
		t.Errorf("buffer aliased its input: %v", b.Bytes())
	}

	out := b.Bytes()
	out[1] = 9
	if !b.Equal([]byte{1, 2, 3}) {
		t.Errorf("Bytes() aliased the buffer: %v", b.Bytes())
	}
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name  string
		start int
		end   int
		repl  []byte
		want  []byte
	}{
		{"insert front", 0, 0, []byte{0xaa}, []byte{0xaa, 0, 1, 2, 3}},
		{"insert back", 4, 4, []byte{0xaa, 0xbb}, []byte{0, 1, 2, 3, 0xaa, 0xbb}},
		{"delete one", 1, 2, nil, []byte{0, 2, 3}},
		{"delete all", 0, 4, nil, []byte{}},
		{"replace", 2, 3, []byte{0xff}, []byte{0, 1, 0xff, 3}},
		{"grow", 1, 2, []byte{7, 8, 9}, []byte{0, 7, 8, 9, 2, 3}},
		{"swapped bounds", 3, 1, nil, []byte{0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New([]byte{0, 1, 2, 3})
			if err := b.Splice(tt.start, tt.end, tt.repl); err != nil {
				t.Fatalf("Splice: %v", err)
			}
			if !bytes.Equal(b.Bytes(), tt.want) {
				t.Errorf("Splice(%d, %d) = %v, want %v", tt.start, tt.end, b.Bytes(), tt.want)
			}
		})
	}
}

func TestSpliceOutOfRange(t *testing.T) {
	b := New([]byte{0, 1, 2})
	err := b.Splice(2, 4, []byte{9})
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Splice past end error = %v, want ErrOutOfRange", err)
	}
	if !b.Equal([]byte{0, 1, 2}) {
		t.Errorf("failed splice modified buffer: %v", b.Bytes())
	}
}

func TestAtAndSlice(t *testing.T) {
	b := New([]byte{10, 20, 30})

	if v, ok := b.At(1); !ok || v != 20 {
		t.Errorf("At(1) = %d, %v, want 20, true", v, ok)
	}
	if _, ok := b.At(3); ok {
		t.Error("At(3) succeeded on 3-byte buffer")
	}

	got, err := b.Slice(2, 0)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if !bytes.Equal(got, []byte{10, 20}) {
		t.Errorf("Slice(2, 0) = %v, want [10 20]", got)
	}

	if _, err := b.Slice(1, 5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Slice(1, 5) error = %v, want ErrOutOfRange", err)
	}
}

func TestCloneIndependent(t *testing.T) {
	b := New([]byte{1, 2})
	c := b.Clone()
	_ = c.Splice(0, 1, nil)
	if b.Len() != 2 || c.Len() != 1 {
		t.Errorf("Len() = %d, %d, want 2, 1", b.Len(), c.Len())
	}
}
