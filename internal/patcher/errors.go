package patcher

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage marks invalid flag combinations.
	ErrUsage = errors.New("usage error")
	// ErrNotFound marks a missing table, dictionary, directory, or backup.
	ErrNotFound = errors.New("not found")
	// ErrLocked is returned when another writing run holds the run lock.
	ErrLocked = errors.New("another auxpatch run is already writing")
)

// runError carries a user-facing message while matching a sentinel with
// errors.Is.
type runError struct {
	kind error
	msg  string
}

func (e *runError) Error() string { return e.msg }

func (e *runError) Unwrap() error { return e.kind }

func usageError(format string, args ...any) error {
	return &runError{kind: ErrUsage, msg: fmt.Sprintf(format, args...)}
}

func notFoundError(format string, args ...any) error {
	return &runError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}
