package renderer

import (
	"fmt"
	"strconv"

	"github.com/dshills/hexim/internal/engine/cursor"
	"github.com/dshills/hexim/internal/renderer/backend"
	"github.com/dshills/hexim/internal/renderer/core"
	"github.com/dshills/hexim/internal/renderer/selection"
	"github.com/dshills/hexim/internal/renderer/viewport"
)

// EmptyMessage is drawn in place of the grid when the buffer has no bytes.
const EmptyMessage = "empty file: go into insert mode and insert some bytes"

const (
	header   = "0  1  2  3  4  5  6  7  8  9  a  b  c  d  e  f"
	hexWidth = viewport.RowWidth*3 - 1
)

// ModelReader is the read-only view of the edit model the renderer needs.
type ModelReader interface {
	Bytes() []byte
	Len() int
	Caret() cursor.Caret
}

// HexView draws the byte grid: a header row with column indexes, then one
// row per 16 bytes with the offset, the hex values and the ASCII column.
type HexView struct {
	window *viewport.Window
	area   core.ScreenRect

	offsetStyle core.Style
}

// NewHexView creates a hex view drawing into area.
func NewHexView(area core.ScreenRect, offsetStyle core.Style) *HexView {
	return &HexView{
		window:      viewport.NewWindow(area.Height()),
		area:        area,
		offsetStyle: offsetStyle,
	}
}

// SetArea moves and resizes the view. The window keeps its start.
func (v *HexView) SetArea(area core.ScreenRect) {
	v.area = area
	v.window.Resize(area.Height())
}

// Area returns the area the view draws into.
func (v *HexView) Area() core.ScreenRect {
	return v.area
}

// Window returns the visible part of the byte grid.
func (v *HexView) Window() *viewport.Window {
	return v.window
}

// ScrollTo scrolls so the row holding index is visible.
func (v *HexView) ScrollTo(index int) {
	v.window.ScrollTo(index)
}

// layout holds the columns of the three grid parts for one frame.
type layout struct {
	offsetWidth int
	hexX        int
	asciiX      int
	top         int
}

func (v *HexView) layoutFor(length int) layout {
	ow := len(strconv.FormatInt(int64(length), 16))
	hexX := v.area.Left + ow + 2
	return layout{
		offsetWidth: ow,
		hexX:        hexX,
		asciiX:      hexX + hexWidth + 2,
		top:         v.area.Top + 1,
	}
}

// Draw renders model into the view area.
func (v *HexView) Draw(b backend.Backend, m ModelReader) {
	data := m.Bytes()
	if len(data) == 0 {
		v.drawEmpty(b)
		return
	}

	l := v.layoutFor(len(data))
	drawString(b, l.hexX+1, v.area.Top, header, v.offsetStyle)

	lo, hi := v.window.VisibleRange(len(data))
	for row := 0; lo+row*viewport.RowWidth < hi; row++ {
		start := lo + row*viewport.RowWidth
		chunk := data[start:min(start+viewport.RowWidth, hi)]
		y := l.top + row

		drawString(b, v.area.Left, y, fmt.Sprintf("%0*x: ", l.offsetWidth, start), v.offsetStyle)
		for col, c := range chunk {
			drawString(b, l.hexX+col*3, y, fmt.Sprintf("%02x ", c), core.DefaultStyle())
			b.SetCell(l.asciiX+col, y, core.NewStyledCell(Printable(c), core.DefaultStyle()))
		}
	}

	v.drawCaret(b, l, m.Caret(), data)
}

func (v *HexView) drawEmpty(b backend.Backend) {
	x := v.area.Left + max(v.area.Width()/2-len(EmptyMessage)/2, 0)
	y := v.area.Top + v.area.Height()/2
	drawString(b, x, y, EmptyMessage, core.DefaultStyle())
}

// cellPos returns the row and column of index inside the grid, and false
// when it is scrolled out.
func (v *HexView) cellPos(l layout, index int) (y, col int, ok bool) {
	if !v.window.Contains(index) {
		return 0, 0, false
	}
	return l.top + (index-v.window.Start())/viewport.RowWidth, index % viewport.RowWidth, true
}

func (v *HexView) drawCaret(b backend.Backend, l layout, c cursor.Caret, data []byte) {
	plain := core.DefaultStyle()

	switch c.Kind() {
	case cursor.KindIndex:
		y, col, ok := v.cellPos(l, c.Index())
		if !ok {
			return
		}
		b.SetCell(l.hexX+col*3-1, y, core.NewStyledCell('|', plain))
		value := ' '
		if c.Index() < len(data) {
			value = Printable(data[c.Index()])
		}
		b.SetCell(l.asciiX+col, y, core.NewStyledCell(value, plain.Underline()))

	case cursor.KindOffset, cursor.KindReplace:
		y, col, ok := v.cellPos(l, c.Index())
		if !ok || c.Index() >= len(data) {
			return
		}
		style := plain.Reverse()
		if c.Kind() == cursor.KindReplace {
			style = plain.Underline()
		}
		v.drawByte(b, l, y, col, data[c.Index()], style, false)

	case cursor.KindVisual:
		v.drawVisual(b, l, c, data)
	}
}

func (v *HexView) drawVisual(b backend.Backend, l layout, c cursor.Caret, data []byte) {
	startPos, endPos := c.Endpoints()
	first := v.window.Start()
	relStart := cursor.SaturatingSub(startPos.Value(), first)
	relEnd := cursor.SaturatingSub(endPos.Value(), first)

	selected := core.DefaultStyle().Reverse()
	for _, span := range selection.RangeToMarker(relStart, relEnd) {
		if span.Row >= v.window.Height() {
			break
		}
		base := first + span.Row*viewport.RowWidth
		y := l.top + span.Row
		for col := span.Start; col <= span.End; col++ {
			if base+col >= len(data) {
				return
			}
			v.drawByte(b, l, y, col, data[base+col], selected, col < span.End)
		}
	}

	end := endPos.Value()
	if y, col, ok := v.cellPos(l, end); ok && end < len(data) {
		drawString(b, l.hexX+col*3, y, fmt.Sprintf("%02x", data[end]), selected.Bold())
	}
}

// drawByte highlights one byte in both columns. The ASCII cell is always
// underlined; trailing also styles the separator after the hex value so
// a selection reads as one block.
func (v *HexView) drawByte(b backend.Backend, l layout, y, col int, c byte, style core.Style, trailing bool) {
	text := fmt.Sprintf("%02x", c)
	if trailing {
		text += " "
	}
	drawString(b, l.hexX+col*3, y, text, style)
	b.SetCell(l.asciiX+col, y, core.NewStyledCell(Printable(c), core.DefaultStyle().Underline()))
}

// caretCell returns the screen cell of the caret's ASCII column, where the
// terminal cursor is placed.
func (v *HexView) caretCell(m ModelReader) (x, y int, ok bool) {
	if m.Len() == 0 {
		return 0, 0, false
	}
	l := v.layoutFor(m.Len())
	y, col, ok := v.cellPos(l, m.Caret().Index())
	return l.asciiX + col, y, ok
}

// Printable returns the rune drawn for c in the ASCII column: the
// character itself for printable ASCII, '.' otherwise.
func Printable(c byte) rune {
	if c >= 0x20 && c <= 0x7e {
		return rune(c)
	}
	return '.'
}

func drawString(b backend.Backend, x, y int, s string, style core.Style) {
	for i, r := range s {
		b.SetCell(x+i, y, core.NewStyledCell(r, style))
	}
}
