// Package script runs user Lua code against the open buffer.
//
// A Runtime owns one sandboxed gopher-lua state for the whole session, so
// functions defined by the init script stay callable from later `:lua`
// commands. Only the base, table, string and math libraries are available.
// The buffer is reached through the global `hex` table:
//
//	hex.len()            buffer length
//	hex.get(i)           byte at offset i, or nil past the end
//	hex.set(i, v)        overwrite the byte at offset i
//	hex.insert(i, v)     insert a byte (number) or bytes (string) before i
//	hex.delete(lo, hi)   remove [lo, hi)
//	hex.cursor()         caret offset
//	hex.jump(i)          move the caret, clamped to the buffer
//	hex.status(msg)      show msg in the status line
//
// Offsets are zero based, matching the offset column on screen. print
// writes to the status line as well.
//
// A Runtime is not safe for concurrent use; the editor calls it from its
// event loop only.
package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single Run or RunFile call.
const DefaultTimeout = 2 * time.Second

// Host is the buffer a script edits.
type Host interface {
	Len() int
	ByteAt(i int) (byte, bool)
	Edit(start, end int, repl []byte) error
	Index() int
	SetIndex(i int)
}

// Logger is the logging surface the runtime needs.
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

// Runtime is a sandboxed Lua state bound to a Host.
type Runtime struct {
	L       *lua.LState
	host    Host
	status  func(string)
	timeout time.Duration
	logger  Logger
	closed  bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithStatus sets the function receiving hex.status and print output.
func WithStatus(fn func(string)) Option {
	return func(r *Runtime) {
		if fn != nil {
			r.status = fn
		}
	}
}

// WithTimeout bounds each run. Zero or a negative value disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) {
		r.timeout = d
	}
}

// WithLogger sets the runtime logger.
func WithLogger(l Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a runtime editing host.
func New(host Host, opts ...Option) *Runtime {
	r := &Runtime{
		host:    host,
		status:  func(string) {},
		timeout: DefaultTimeout,
		logger:  nopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	installPrint(r.L, r.status)
	r.registerAPI()
	return r
}

// Run executes a chunk of Lua code.
func (r *Runtime) Run(code string) error {
	r.logger.Debug("lua: run %d bytes", len(code))
	return r.do(func() error {
		return r.L.DoString(code)
	})
}

// RunFile executes a Lua file.
func (r *Runtime) RunFile(path string) error {
	r.logger.Debug("lua: source %s", path)
	return r.do(func() error {
		return r.L.DoFile(path)
	})
}

// Close releases the Lua state. Later runs return ErrClosed.
func (r *Runtime) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}

func (r *Runtime) do(fn func() error) (err error) {
	if r.closed {
		return ErrClosed
	}

	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
	}()

	err = fn()
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		r.logger.Warn("lua: timed out after %v", r.timeout)
		return ErrTimeout
	}
	return flatten(err)
}

// flatten drops the Lua stack trace and trailing newline so the message
// fits the status line.
func flatten(err error) error {
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) && apiErr.Object != nil {
		return errors.New(strings.TrimSpace(apiErr.Object.String()))
	}
	return err
}
