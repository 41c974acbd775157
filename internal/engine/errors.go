package engine

import (
	"errors"
	"fmt"
)

// Errors returned by engine operations.
var (
	// ErrNoPath indicates a save was requested before any path was set.
	ErrNoPath = errors.New("no file name")

	// ErrIsDirectory indicates the path names a directory.
	ErrIsDirectory = errors.New("is a directory")
)

// EditError describes a rejected edit. The buffer is unchanged when it is
// returned.
type EditError struct {
	Op    string
	Start int
	End   int
	Len   int
	Err   error
}

// Error implements the error interface.
func (e *EditError) Error() string {
	return fmt.Sprintf("%s [%d, %d) of %d bytes: %v", e.Op, e.Start, e.End, e.Len, e.Err)
}

// Unwrap returns the underlying error.
func (e *EditError) Unwrap() error {
	return e.Err
}
