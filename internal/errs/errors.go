package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrInvalid  = errors.New("invalid")
	// ErrStorage marks connectivity loss, constraint violations and other
	// database-level failures surfaced by the repository.
	ErrStorage = errors.New("storage_error")
)
