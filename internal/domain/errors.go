package domain

import "errors"

// Error kinds shared by every layer. Package-level sentinels wrap one of these,
// so callers can classify an error with errors.Is without knowing its origin.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInfrastructure    = errors.New("infrastructure error")
)
