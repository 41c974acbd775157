package script

import "errors"

// Errors for script execution.
var (
	// ErrClosed is returned when running code on a closed runtime.
	ErrClosed = errors.New("lua state is closed")

	// ErrTimeout is returned when a script runs longer than the configured
	// timeout.
	ErrTimeout = errors.New("lua execution timeout")
)
