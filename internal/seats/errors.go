package seats

import "errors"

// Store error taxonomy. Conflict is an expected outcome under contention and
// is never logged as an error by callers.
var (
	ErrNotFound        = errors.New("seat not found")
	ErrConflict        = errors.New("seat state changed by another actor")
	ErrInvalidArgument = errors.New("invalid argument")
)
