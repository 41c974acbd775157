// Package statusline provides the two-row status area under the hex view.
//
// The first row (head) shows the file path in reverse video with the mode
// name on the right. The second row (body) shows the last message on the
// left and the caret offset, centered, as "0x<hex> (<dec>)".
package statusline

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/hexim/internal/renderer/backend"
	"github.com/dshills/hexim/internal/renderer/core"
)

// Height is the number of rows the status line uses.
const Height = 2

// StatusLine renders the bottom status area.
type StatusLine struct {
	head  string
	body  string
	mode  string
	index int

	width int

	headStyle core.Style
	bodyStyle core.Style
}

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{
		mode:      "NORMAL",
		headStyle: core.DefaultStyle().Reverse(),
		bodyStyle: core.DefaultStyle(),
	}
}

// SetHead updates the head text (usually the file path).
func (s *StatusLine) SetHead(text string) {
	s.head = text
}

// Head returns the head text.
func (s *StatusLine) Head() string {
	return s.head
}

// SetBody updates the message row.
func (s *StatusLine) SetBody(text string) {
	s.body = text
}

// Body returns the message row text.
func (s *StatusLine) Body() string {
	return s.body
}

// SetMode updates the displayed mode name.
func (s *StatusLine) SetMode(mode string) {
	s.mode = mode
}

// SetIndex updates the displayed caret offset.
func (s *StatusLine) SetIndex(index int) {
	s.index = index
}

// Index returns the displayed caret offset.
func (s *StatusLine) Index() int {
	return s.index
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// OffsetText formats the caret offset as shown in the body row.
func OffsetText(index int) string {
	return fmt.Sprintf("0x%x (%d)", index, index)
}

// Render draws both rows starting at row y.
func (s *StatusLine) Render(b backend.Backend, x, y int) {
	s.renderHead(b, x, y)
	s.renderBody(b, x, y+1)
}

// CursorColumn returns the column just after the body text, where the
// terminal cursor goes while a command is typed.
func (s *StatusLine) CursorColumn() int {
	return min(runewidth.StringWidth(s.body), max(s.width-1, 0))
}

func (s *StatusLine) renderHead(b backend.Backend, x, y int) {
	mode := " " + s.mode + " "
	room := s.width - runewidth.StringWidth(mode)
	head := runewidth.FillRight(runewidth.Truncate(s.head, max(room, 0), "…"), max(room, 0))

	col := drawText(b, x, y, head, s.headStyle, s.width)
	drawText(b, x+col, y, mode, s.headStyle.Bold(), s.width-col)
}

func (s *StatusLine) renderBody(b backend.Backend, x, y int) {
	b.Fill(core.RectFromSize(y, x, 1, s.width), core.EmptyCell())

	offset := OffsetText(s.index)
	center := s.width/2 - runewidth.StringWidth(offset)/2

	drawText(b, x, y, runewidth.Truncate(s.body, s.width, "…"), s.bodyStyle, s.width)
	if center > runewidth.StringWidth(s.body) {
		drawText(b, x+center, y, offset, s.bodyStyle, s.width-center)
	}
}

// drawText draws text from (x, y) using at most limit columns and returns
// the number of columns used.
func drawText(b backend.Backend, x, y int, text string, style core.Style, limit int) int {
	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if col+w > limit {
			break
		}
		b.SetCell(x+col, y, core.NewStyledCell(r, style))
		col += w
	}
	return col
}
