package dispatcher

import "errors"

// Dispatcher errors. They are shown on the status line.
var (
	// ErrNoClipboard indicates no clipboard collaborator was configured.
	ErrNoClipboard = errors.New("clipboard is not available")

	// ErrNoScripting indicates no script runner was configured.
	ErrNoScripting = errors.New("scripting is not available")
)
