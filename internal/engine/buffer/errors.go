package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrOutOfRange indicates a splice or slice extends past the end of the buffer.
	ErrOutOfRange = errors.New("range out of bounds")
)
