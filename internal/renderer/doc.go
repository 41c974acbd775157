// Package renderer draws the hex editor screen.
//
// The screen is split into two areas:
//
//	┌──────────────────────────────────────────────┐
//	│ HexView: offsets │ hex bytes │ ASCII column  │
//	│                                              │
//	├──────────────────────────────────────────────┤
//	│ StatusLine head (path, mode)                 │
//	│ StatusLine body (message, offset)            │
//	└──────────────────────────────────────────────┘
//
// Renderer is the facade used by the dispatcher. It owns the viewport
// window, forwards status updates and redraws everything on Render.
// The smallest area drawn is 75x4; a smaller terminal clips the output.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.SetModel(model)
//	r.Render()
package renderer
