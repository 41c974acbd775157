package dispatcher

import "github.com/dshills/hexim/internal/input/mode"

// View receives everything the controller wants shown.
type View interface {
	// ScrollTo scrolls the grid so index is visible.
	ScrollTo(index int)
	// SetHead sets the status head, normally the file path.
	SetHead(text string)
	// SetBody sets the status message.
	SetBody(text string)
	// SetIndex sets the offset shown in the status line.
	SetIndex(index int)
	// SetMode reports the active mode.
	SetMode(s mode.State)
}

// Clipboard transfers bytes to and from the system clipboard.
type Clipboard interface {
	// Copy stores data and returns a message for the status line.
	Copy(data []byte) (string, error)
	// Paste returns the clipboard contents as bytes.
	Paste() ([]byte, error)
}

// ScriptRunner executes Lua code against the model.
type ScriptRunner interface {
	Run(code string) error
	RunFile(path string) error
}

// Logger is the logging surface the controller needs.
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

type nopView struct{}

func (nopView) ScrollTo(int)        {}
func (nopView) SetHead(string)      {}
func (nopView) SetBody(string)      {}
func (nopView) SetIndex(int)        {}
func (nopView) SetMode(mode.State) {}
