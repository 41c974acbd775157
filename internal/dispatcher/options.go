package dispatcher

import "github.com/dshills/hexim/internal/input/entry"

// Option configures a Controller during creation.
type Option func(*Controller)

// WithClipboard sets the clipboard used by Ctrl-c and Ctrl-v.
func WithClipboard(cb Clipboard) Option {
	return func(c *Controller) {
		c.clipboard = cb
	}
}

// WithScripts sets the runner for :lua and :source.
func WithScripts(r ScriptRunner) Option {
	return func(c *Controller) {
		c.scripts = r
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithInputMode sets the initial input mode.
func WithInputMode(m entry.InputMode) Option {
	return func(c *Controller) {
		c.input = m
	}
}

// WithMetrics enables dispatch statistics.
func WithMetrics() Option {
	return func(c *Controller) {
		c.metrics = NewMetrics()
	}
}

// WithPanicRecovery sets whether panics inside an action are recovered.
// Recovery is on by default.
func WithPanicRecovery(recover bool) Option {
	return func(c *Controller) {
		c.recoverPanics = recover
	}
}
