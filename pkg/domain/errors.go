package domain

import "errors"

// Shared error taxonomy. Slices wrap these with fmt.Errorf("%w: ...") so
// boundaries can classify failures with errors.Is.
var (
	// ErrInvalidArgument marks a caller bug: malformed query, negative
	// amount, unknown enum value. Never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a lookup miss on an existing collection.
	ErrNotFound = errors.New("not found")

	// ErrDataUnavailable marks a failure to load reference data. Fatal at
	// startup, not recoverable per request.
	ErrDataUnavailable = errors.New("data unavailable")
)
