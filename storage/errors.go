package storage

import "errors"

var (
	// ErrInvalidArgument marks a contract violation by the caller: a nil entity,
	// a self-reference, or a subtask pointing at an epic that does not exist.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when an update targets an id the store does not hold.
	ErrNotFound = errors.New("not found")
)
