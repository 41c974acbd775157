// Package app wires the edit model, the modal controller, the renderer and
// the session services into a running editor.
//
// Application owns the event loop. Terminal input, file watcher reports
// and termination signals are funneled into one queue and handled on the
// loop goroutine, so the model and the controller are never shared
// between goroutines.
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/hexim/internal/clipboard"
	"github.com/dshills/hexim/internal/config"
	"github.com/dshills/hexim/internal/dispatcher"
	"github.com/dshills/hexim/internal/engine"
	"github.com/dshills/hexim/internal/renderer"
	"github.com/dshills/hexim/internal/renderer/backend"
	"github.com/dshills/hexim/internal/script"
	"github.com/dshills/hexim/internal/vfs"
	"github.com/dshills/hexim/internal/watcher"
)

// Options configures an Application.
type Options struct {
	// Path is the file being edited. It need not exist.
	Path string

	// Config holds the session settings. Defaults to config.Default().
	Config *config.Config

	// Backend is the terminal. Required.
	Backend backend.Backend

	// FS is the file system the model reads and writes. Defaults to the
	// OS file system.
	FS vfs.VFS

	// Logger receives application logs. Defaults to NullLogger.
	Logger *Logger

	// Clipboard overrides the system clipboard.
	Clipboard dispatcher.Clipboard
}

// Application is the running editor.
type Application struct {
	path    string
	cfg     *config.Config
	logger  *Logger
	backend backend.Backend

	model      *engine.Model
	renderer   *renderer.Renderer
	controller *dispatcher.Controller
	scripts    *script.Runtime
	watcher    *watcher.DebouncedWatcher
	clipboard  dispatcher.Clipboard

	metrics *Metrics
	signals chan os.Signal

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

// New creates the application and loads the file. A file that does not
// exist yet opens as an empty buffer.
func New(opts Options) (*Application, error) {
	if opts.Backend == nil {
		return nil, ErrNoBackend
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = NullLogger
	}
	if opts.FS == nil {
		opts.FS = vfs.NewOSFS()
	}

	app := &Application{
		path:      opts.Path,
		cfg:       opts.Config,
		logger:    opts.Logger,
		backend:   opts.Backend,
		clipboard: opts.Clipboard,
		metrics:   NewMetrics(),
		signals:   make(chan os.Signal, 1),
		done:      make(chan struct{}),
	}

	app.model = engine.New(
		engine.WithFS(opts.FS),
		engine.WithUndoLimit(app.cfg.Editor.UndoLimit),
		engine.WithLogger(app.logger.WithComponent("engine")),
	)
	if err := app.model.Open(opts.Path); err != nil {
		return nil, NewOperationError("open", opts.Path, err)
	}
	app.logger.Info("opened %s (%d bytes)", opts.Path, app.model.Len())

	return app, nil
}

// Model returns the edit model.
func (app *Application) Model() *engine.Model {
	return app.model
}

// Metrics returns the event loop metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Run initializes the terminal and runs the event loop until the user
// quits, a termination signal arrives, ctx is canceled or Shutdown is
// called. A quit returns nil; a signal returns ErrKilled.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	app.renderer = renderer.New(app.backend, renderer.Options{OffsetColor: app.cfg.OffsetColor()})
	app.renderer.SetModel(app.model)
	app.renderer.SetHead(app.path)

	app.scripts = script.New(app.model,
		script.WithStatus(app.renderer.SetBody),
		script.WithTimeout(app.cfg.Script.Timeout.Std()),
		script.WithLogger(app.logger.WithComponent("script")),
	)
	defer app.scripts.Close()

	app.controller = dispatcher.New(app.model, app.renderer, app.controllerOptions()...)

	app.startWatcher()
	defer app.stopWatcher()

	app.runInitScript()

	err := app.eventLoop(ctx)
	app.logSummary()
	return err
}

// Shutdown stops a running event loop.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() {
		close(app.done)
	})
}

func (app *Application) controllerOptions() []dispatcher.Option {
	opts := []dispatcher.Option{
		dispatcher.WithScripts(app.scripts),
		dispatcher.WithLogger(app.logger.WithComponent("dispatcher")),
		dispatcher.WithInputMode(app.cfg.InputMode()),
		dispatcher.WithMetrics(),
	}
	switch {
	case app.clipboard != nil:
		opts = append(opts, dispatcher.WithClipboard(app.clipboard))
	case app.cfg.Clipboard.Enabled:
		opts = append(opts, dispatcher.WithClipboard(clipboard.New(true)))
	}
	return opts
}

// startWatcher watches the open file for outside changes. Failures are
// logged and the session continues without a watcher.
func (app *Application) startWatcher() {
	if !app.cfg.Watch.Enabled || app.path == "" {
		return
	}

	log := app.logger.WithComponent("watcher")
	w, err := watcher.New(watcher.WithDebounceDelay(app.cfg.Watch.Debounce.Std()))
	if err != nil {
		log.Warn("could not start watcher: %v", err)
		return
	}
	if err := w.Watch(app.path); err != nil {
		log.Warn("could not watch %s: %v", app.path, err)
		_ = w.Close()
		return
	}

	app.watcher = w
	app.controller.OnSave(func(path string) {
		w.Suppress(path)
	})
	log.Debug("watching %s", app.path)
}

func (app *Application) stopWatcher() {
	if app.watcher == nil {
		return
	}
	if err := app.watcher.Close(); err != nil {
		app.logger.Warn("closing watcher: %v", err)
	}
	app.watcher = nil
}

// runInitScript sources the configured init script. Errors end up on the
// status line like any other :source.
func (app *Application) runInitScript() {
	path := expandHome(app.cfg.Script.Init)
	if path == "" {
		return
	}
	app.logger.Debug("sourcing init script %s", path)
	app.controller.Apply(dispatcher.Action{Kind: dispatcher.ActionSource, Path: path})
}

func (app *Application) logSummary() {
	s := app.metrics.Snapshot()
	app.logger.Info("session ended after %v: %d frames (avg %v, max %v), events terminal=%d watcher=%d signal=%d",
		s.Uptime.Round(time.Millisecond), s.FrameCount, s.FrameAvg, s.FrameMax,
		s.TerminalEvts, s.WatcherEvts, s.SignalEvts)

	if dm := app.controller.Metrics(); dm != nil {
		ds := dm.Snapshot()
		app.logger.Info("dispatch: %d keys, %d failed actions, %d panics",
			ds.TotalKeys, ds.TotalErrors, ds.TotalPanics)
	}
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
