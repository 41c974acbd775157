package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/hexim/internal/renderer/backend"
	"github.com/dshills/hexim/internal/watcher"
)

// loopEventQueue is the capacity of the event queue shared by the input
// sources.
const loopEventQueue = 64

// loopEvent is one entry of the event queue. Exactly one of the payload
// fields is meaningful, selected by source.
type loopEvent struct {
	source EventSource

	term backend.Event

	file    watcher.Event
	fileErr error
}

// eventLoop drains the event queue until a quit.
func (app *Application) eventLoop(ctx context.Context) error {
	events := make(chan loopEvent, loopEventQueue)
	stop := make(chan struct{})
	defer close(stop)

	signal.Notify(app.signals, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGINT)
	defer signal.Stop(app.signals)

	go app.pollTerminal(events, stop)
	if app.watcher != nil {
		go app.forwardWatcher(app.watcher, events, stop)
	}

	app.render()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-app.done:
			return nil

		case sig := <-app.signals:
			app.metrics.RecordEvent(SourceSignal)
			app.logger.Info("received %v, exiting without saving", sig)
			return ErrKilled

		case ev := <-events:
			app.metrics.RecordEvent(ev.source)
			if err := app.handleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}

		app.render()
	}
}

// handleEvent applies one queued event. It returns ErrQuit when the
// editor should stop.
func (app *Application) handleEvent(ev loopEvent) error {
	switch ev.source {
	case SourceTerminal:
		return app.handleTerminalEvent(ev.term)
	case SourceWatcher:
		app.handleFileEvent(ev.file, ev.fileErr)
	}
	return nil
}

func (app *Application) handleTerminalEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		if !app.controller.Dispatch(ev.Key) {
			return ErrQuit
		}
	case backend.EventResize:
		app.renderer.Resize(ev.Width, ev.Height)
	case backend.EventClosed:
		app.logger.Warn("terminal closed")
		return ErrQuit
	}
	return nil
}

func (app *Application) handleFileEvent(ev watcher.Event, err error) {
	if err != nil {
		app.logger.WithComponent("watcher").Warn("%v", err)
		return
	}
	app.logger.Info("external change: %s %s", ev.Op, ev.Path)
	app.renderer.SetBody(externalChangeMessage(ev))
}

// externalChangeMessage is the status line text for an outside change to
// the open file.
func externalChangeMessage(ev watcher.Event) string {
	if ev.Removed() {
		return fmt.Sprintf("external change: %q was removed", ev.Path)
	}
	return fmt.Sprintf("external change: %q was modified", ev.Path)
}

func (app *Application) render() {
	if !app.renderer.NeedsRedraw() {
		return
	}
	start := time.Now()
	app.renderer.Render()
	app.metrics.RecordFrame(time.Since(start))
}

// pollTerminal feeds terminal events into the queue. It returns once the
// backend is shut down or the loop has stopped.
func (app *Application) pollTerminal(events chan<- loopEvent, stop <-chan struct{}) {
	for {
		ev := app.backend.PollEvent()
		if ev.Type == backend.EventNone {
			continue
		}
		select {
		case events <- loopEvent{source: SourceTerminal, term: ev}:
		case <-stop:
			return
		}
		if ev.Type == backend.EventClosed {
			return
		}
	}
}

// forwardWatcher feeds watcher events and errors into the queue.
func (app *Application) forwardWatcher(w watcher.Watcher, events chan<- loopEvent, stop <-chan struct{}) {
	for {
		var le loopEvent
		select {
		case ev, ok := <-w.Events():
			if !ok {
				return
			}
			le = loopEvent{source: SourceWatcher, file: ev}
		case err, ok := <-w.Errors():
			if !ok {
				return
			}
			le = loopEvent{source: SourceWatcher, fileErr: err}
		case <-stop:
			return
		}

		select {
		case events <- le:
		case <-stop:
			return
		}
	}
}
