package renderer

import (
	"strings"
	"testing"

	"github.com/dshills/hexim/internal/engine"
	"github.com/dshills/hexim/internal/input/entry"
	"github.com/dshills/hexim/internal/input/mode"
	"github.com/dshills/hexim/internal/renderer/backend"
	"github.com/dshills/hexim/internal/renderer/core"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ012345"

func setup(t *testing.T, w, h int, data []byte) (*Renderer, *backend.NullBackend, *engine.Model) {
	t.Helper()
	b := backend.NewNullBackend(w, h)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	m := engine.New(engine.WithData(data))
	r := New(b, DefaultOptions())
	r.SetModel(m)
	return r, b, m
}

func TestRenderEmptyBuffer(t *testing.T) {
	r, b, _ := setup(t, 80, 24, nil)
	r.Render()

	// Hex area is 21 rows high; the hint sits on its middle row.
	row := b.Row(10)
	if !strings.Contains(row, EmptyMessage) {
		t.Errorf("row 10 = %q, want empty-file hint", row)
	}
	if got := strings.Index(row, EmptyMessage); got != 40-len(EmptyMessage)/2 {
		t.Errorf("hint at column %d, want %d", got, 40-len(EmptyMessage)/2)
	}
}

func TestRenderGrid(t *testing.T) {
	r, b, _ := setup(t, 80, 24, []byte(alphabet))
	r.Render()

	// Offset width is len("20") == 2, so hex starts at column 4 and
	// ASCII at 4 + 47 + 2. Header labels sit over the low nibble.
	if got := b.Row(0)[5 : 5+len(header)]; got != header {
		t.Errorf("header = %q, want %q", got, header)
	}
	row1 := b.Row(1)
	if !strings.HasPrefix(row1, "00: 41 42 43") {
		t.Errorf("row 1 = %q, want offset and hex", row1)
	}
	if got := row1[53:69]; got != "ABCDEFGHIJKLMNOP" {
		t.Errorf("ascii column = %q", got)
	}
	if !strings.HasPrefix(b.Row(2), "10: 51 52") {
		t.Errorf("row 2 = %q", b.Row(2))
	}
	if !strings.HasPrefix(b.Row(3), "~ ") {
		t.Errorf("row 3 = %q, want filler", b.Row(3))
	}
	if !b.GetCell(0, 1).Style.Foreground.Equals(core.ColorRed) {
		t.Error("offsets should use the offset color")
	}
}

func TestRenderOffsetCaret(t *testing.T) {
	r, b, m := setup(t, 80, 24, []byte(alphabet))
	m.SetIndex(17)
	r.Render()

	// Byte 17 is on row 2, column 1.
	cell := b.GetCell(4+3, 2)
	if cell.Rune != '5' || !cell.Style.Attributes.Has(core.AttrReverse) {
		t.Errorf("caret cell = %+v, want reversed '5'", cell)
	}
	if !b.GetCell(53+1, 2).Style.Attributes.Has(core.AttrUnderline) {
		t.Error("ascii caret should be underlined")
	}
	if b.GetCell(4, 2).Style.Attributes.Has(core.AttrReverse) {
		t.Error("neighbour byte should not be highlighted")
	}
}

func TestRenderIndexCaret(t *testing.T) {
	r, b, m := setup(t, 80, 24, []byte(alphabet))
	m.ToInsert()
	m.SetIndex(32)
	r.ScrollTo(m.Index())
	r.SetMode(mode.Insert(entry.New(entry.Hex)))
	r.Render()

	// Index 32 starts a new row just past the data.
	if got := b.GetCell(3, 3).Rune; got != '|' {
		t.Errorf("insertion marker = %q, want '|'", got)
	}
	x, y, visible := b.CursorPosition()
	if !visible || x != 53 || y != 3 {
		t.Errorf("cursor = %d,%d,%v, want 53,3,true", x, y, visible)
	}
	if b.CursorStyleValue() != backend.CursorBar {
		t.Errorf("cursor style = %v, want bar", b.CursorStyleValue())
	}
}

func TestRenderVisualSelection(t *testing.T) {
	r, b, m := setup(t, 80, 24, []byte(alphabet))
	m.SetIndex(14)
	m.ToVisual()
	m.IncIndex(4)
	r.Render()

	for i := 14; i <= 18; i++ {
		x, y := 4+(i%16)*3, 1+i/16
		if !b.GetCell(x, y).Style.Attributes.Has(core.AttrReverse) {
			t.Errorf("byte %d not highlighted", i)
		}
	}
	if b.GetCell(4+13*3, 1).Style.Attributes.Has(core.AttrReverse) {
		t.Error("byte 13 should not be highlighted")
	}
	if !b.GetCell(4+2*3, 2).Style.Attributes.Has(core.AttrBold) {
		t.Error("active endpoint should be bold")
	}
	// The separator after the last byte of a row span is part of the block.
	if !b.GetCell(4+14*3+2, 1).Style.Attributes.Has(core.AttrReverse) {
		t.Error("separator inside selection should be highlighted")
	}
}

func TestRenderStatus(t *testing.T) {
	r, b, _ := setup(t, 80, 24, []byte(alphabet))
	r.SetHead("/tmp/x.bin")
	r.SetBody("-- Insert (Hex) --")
	r.SetIndex(255)
	r.Render()

	if !strings.HasPrefix(b.Row(22), "/tmp/x.bin") {
		t.Errorf("head = %q", b.Row(22))
	}
	body := b.Row(23)
	if !strings.HasPrefix(body, "-- Insert (Hex) --") || !strings.Contains(body, "0xff (255)") {
		t.Errorf("body = %q", body)
	}
}

func TestRenderCommandCursor(t *testing.T) {
	r, b, _ := setup(t, 80, 24, []byte(alphabet))
	r.SetMode(mode.Command("wq"))
	r.SetBody(":wq")
	r.Render()

	x, y, visible := b.CursorPosition()
	if !visible || x != 3 || y != 23 {
		t.Errorf("cursor = %d,%d,%v, want 3,23,true", x, y, visible)
	}
}

func TestScrollTo(t *testing.T) {
	data := make([]byte, 128)
	r, b, _ := setup(t, 80, 6, data)

	// 6 rows leave 3 grid rows; index 100 is on row 6, so rows 4..6 show.
	r.ScrollTo(100)
	r.Render()
	if !strings.HasPrefix(b.Row(1), "40: ") {
		t.Errorf("first grid row = %q, want offset 0x40", b.Row(1))
	}
	if start := r.HexView().Window().Start(); start != 0x40 {
		t.Errorf("window start = %#x, want 0x40", start)
	}
}

func TestMinimumArea(t *testing.T) {
	r, _, _ := setup(t, 20, 2, nil)
	if w, h := r.Size(); w != MinWidth || h != MinHeight {
		t.Errorf("Size() = %d,%d, want %d,%d", w, h, MinWidth, MinHeight)
	}
	if got := r.HexView().Area().Height(); got != 1 {
		t.Errorf("hex area height = %d, want 1", got)
	}
}

func TestResizeKeepsCaretVisible(t *testing.T) {
	data := make([]byte, 256)
	r, _, m := setup(t, 80, 24, data)
	m.SetIndex(200)
	r.ScrollTo(200)

	r.Resize(80, 6)
	if !r.HexView().Window().Contains(200) {
		t.Error("caret scrolled out after resize")
	}
}

func TestRedrawTracking(t *testing.T) {
	r, b, _ := setup(t, 80, 24, []byte("x"))
	if !r.NeedsRedraw() {
		t.Fatal("new renderer should need a redraw")
	}
	r.Render()
	if r.NeedsRedraw() {
		t.Error("Render should clear the redraw flag")
	}
	r.SetBody("msg")
	if !r.NeedsRedraw() {
		t.Error("SetBody should mark dirty")
	}
	if r.FrameCount() != 1 || b.ShowCount() != 1 {
		t.Errorf("frames = %d, shows = %d, want 1, 1", r.FrameCount(), b.ShowCount())
	}
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		in   byte
		want rune
	}{
		{0x00, '.'},
		{0x1f, '.'},
		{' ', ' '},
		{'A', 'A'},
		{'~', '~'},
		{0x7f, '.'},
		{0xff, '.'},
	}
	for _, tt := range tests {
		if got := Printable(tt.in); got != tt.want {
			t.Errorf("Printable(%#x) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
