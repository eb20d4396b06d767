package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUndetectableType indicates format detection matched no known
	// schema. The caller should supply an explicit type override.
	ErrUndetectableType = errors.New("could not detect XML type")

	// ErrUnsupportedType indicates an explicit override named an
	// unrecognised schema key.
	ErrUnsupportedType = errors.New("unsupported XML type")

	// ErrUnknownDestination indicates a collection has no destination
	// mapping, or a detector-status upload was requested without a run
	// number. Fatal for the whole batch before any write is attempted.
	ErrUnknownDestination = errors.New("unknown destination")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
