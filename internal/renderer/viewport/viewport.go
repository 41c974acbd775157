// Package viewport tracks which rows of the byte grid are on screen.
//
// The grid is RowWidth bytes wide. A Window remembers the first visible
// byte offset (always row aligned) and the number of visible rows, and
// scrolls only as far as needed to keep the caret visible.
package viewport

// RowWidth is the number of bytes drawn per row.
const RowWidth = 16

// MoveWindow returns the start of a window of height rows that contains
// index, scrolling as little as possible from start. If index is already
// inside [start, start+height-1] start is returned unchanged. It returns
// false when height is zero.
func MoveWindow(start, height, index int) (int, bool) {
	if height <= 0 {
		return start, false
	}

	last := start + (height - 1)
	switch {
	case index < start:
		return index, true
	case index > last:
		return index - (height - 1), true
	}
	return start, true
}

// Align rounds v down to a multiple of b. A zero boundary returns v.
func Align(v, b int) int {
	if b == 0 {
		return v
	}
	return v - v%b
}

// AlignTop returns the last value of the b-sized block containing v.
// A zero boundary returns v.
func AlignTop(v, b int) int {
	if b == 0 {
		return v
	}
	return Align(v, b) + (b - 1)
}

// Window is the visible part of the byte grid.
type Window struct {
	start  int
	height int
}

// NewWindow creates a window showing height rows from offset 0.
func NewWindow(height int) *Window {
	w := &Window{}
	w.Resize(height)
	return w
}

// Start returns the first visible byte offset. It is a multiple of RowWidth.
func (w *Window) Start() int {
	return w.start
}

// StartRow returns the first visible row.
func (w *Window) StartRow() int {
	return w.start / RowWidth
}

// Height returns the number of visible rows.
func (w *Window) Height() int {
	return w.height
}

// Resize changes the number of visible rows. Negative heights become zero.
func (w *Window) Resize(height int) {
	if height < 0 {
		height = 0
	}
	w.height = height
}

// SetStart moves the window to the row containing offset.
func (w *Window) SetStart(offset int) {
	if offset < 0 {
		offset = 0
	}
	w.start = Align(offset, RowWidth)
}

// ScrollTo scrolls the window in whole rows so the row containing index
// is visible. A zero-height window does not move.
func (w *Window) ScrollTo(index int) {
	if index < 0 {
		index = 0
	}
	row, ok := MoveWindow(w.start/RowWidth, w.height, index/RowWidth)
	if !ok {
		return
	}
	w.start = row * RowWidth
}

// Contains reports whether the byte at index is inside the window.
func (w *Window) Contains(index int) bool {
	return index >= w.start && index < w.start+w.height*RowWidth
}

// VisibleRange returns the half-open byte range [lo, hi) that is on screen
// for a buffer of the given length.
func (w *Window) VisibleRange(length int) (lo, hi int) {
	lo = min(w.start, length)
	hi = min(w.start+w.height*RowWidth, length)
	return lo, hi
}
