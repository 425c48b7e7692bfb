package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState is a generic sentinel for operations illegal in the
	// current session status or phase.
	ErrInvalidState = errors.New("invalid state")
	// ErrAlreadyExists is a generic sentinel for unique constraint conflicts.
	ErrAlreadyExists = errors.New("already exists")
)
