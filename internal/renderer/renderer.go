package renderer

import (
	"sync"

	"github.com/dshills/hexim/internal/input/mode"
	"github.com/dshills/hexim/internal/renderer/backend"
	"github.com/dshills/hexim/internal/renderer/core"
	"github.com/dshills/hexim/internal/renderer/statusline"
)

// Minimum drawing area. Terminals smaller than this clip the output.
const (
	MinWidth  = 75
	MinHeight = 4
)

// Options configures the renderer.
type Options struct {
	// OffsetColor colors the offset column, the header row and the
	// filler column.
	OffsetColor core.Color
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{OffsetColor: core.ColorRed}
}

// Renderer is the main rendering facade. It implements the view the
// dispatcher reports to: scrolling, status head/body/offset and mode.
type Renderer struct {
	mu sync.Mutex

	opts    Options
	backend backend.Backend
	width   int
	height  int

	model  ModelReader
	hex    *HexView
	status *statusline.StatusLine
	mode   mode.State

	needsRedraw bool
	frameCount  uint64
}

// New creates a new renderer with the given backend and options.
func New(b backend.Backend, opts Options) *Renderer {
	r := &Renderer{
		opts:        opts,
		backend:     b,
		hex:         NewHexView(core.ScreenRect{}, core.NewStyle(opts.OffsetColor)),
		status:      statusline.New(),
		mode:        mode.Normal(),
		needsRedraw: true,
	}
	r.resize(b.Size())
	return r
}

// SetModel sets the model drawn by the hex view.
func (r *Renderer) SetModel(m ModelReader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.model = m
	r.needsRedraw = true
}

// Resize handles terminal resize events. The caret is scrolled back into
// view under the new height.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resize(width, height)
	if r.model != nil {
		r.hex.ScrollTo(r.model.Caret().Index())
	}
}

func (r *Renderer) resize(width, height int) {
	w, h := max(width, MinWidth), max(height, MinHeight)
	r.width, r.height = w, h
	r.hex.SetArea(core.RectFromSize(0, 0, h-3, w))
	r.status.Resize(w)
	r.needsRedraw = true
}

// Size returns the drawing area, which is never below the minimum.
func (r *Renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// ScrollTo scrolls the hex view so index is visible.
func (r *Renderer) ScrollTo(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hex.ScrollTo(index)
	r.needsRedraw = true
}

// SetHead sets the status head text.
func (r *Renderer) SetHead(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.SetHead(text)
	r.needsRedraw = true
}

// SetBody sets the status message.
func (r *Renderer) SetBody(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.SetBody(text)
	r.needsRedraw = true
}

// SetIndex sets the offset shown in the status line.
func (r *Renderer) SetIndex(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.SetIndex(index)
	r.needsRedraw = true
}

// SetMode updates the mode name and the terminal cursor shape.
func (r *Renderer) SetMode(s mode.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mode = s
	r.status.SetMode(s.Name())
	r.needsRedraw = true
}

// Status returns the status line, for inspection.
func (r *Renderer) Status() *statusline.StatusLine {
	return r.status
}

// HexView returns the hex view.
func (r *Renderer) HexView() *HexView {
	return r.hex
}

// NeedsRedraw returns true if state changed since the last frame.
func (r *Renderer) NeedsRedraw() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.needsRedraw
}

// MarkDirty marks the renderer as needing a redraw.
func (r *Renderer) MarkDirty() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.needsRedraw = true
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// Render redraws the whole screen and flushes it.
func (r *Renderer) Render() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backend.Clear()
	r.drawFiller()
	if r.model != nil {
		r.hex.Draw(r.backend, r.model)
	}
	r.status.Render(r.backend, 0, r.height-statusline.Height)
	r.placeCursor()
	r.backend.Show()

	r.needsRedraw = false
	r.frameCount++
}

// drawFiller marks every grid row with '~'; rows holding bytes are
// overdrawn by their offsets.
func (r *Renderer) drawFiller() {
	style := core.NewStyle(r.opts.OffsetColor)
	for y := 0; y < r.height-2; y++ {
		r.backend.SetCell(0, y, core.NewStyledCell('~', style))
	}
}

func (r *Renderer) placeCursor() {
	if r.mode.Kind() == mode.KindCommand {
		r.backend.SetCursorStyle(backend.CursorBar)
		r.backend.ShowCursor(r.status.CursorColumn(), r.height-1)
		return
	}

	style := cursorStyle(r.mode.CursorStyle())
	if style == backend.CursorHidden || r.model == nil {
		r.backend.HideCursor()
		return
	}
	x, y, ok := r.hex.caretCell(r.model)
	if !ok {
		r.backend.HideCursor()
		return
	}
	r.backend.SetCursorStyle(style)
	r.backend.ShowCursor(x, y)
}

func cursorStyle(s mode.CursorStyle) backend.CursorStyle {
	switch s {
	case mode.CursorBar:
		return backend.CursorBar
	case mode.CursorUnderline:
		return backend.CursorUnderline
	case mode.CursorHidden:
		return backend.CursorHidden
	default:
		return backend.CursorBlock
	}
}
