package services

import "errors"

// Failure taxonomy shared by every service. Controllers map these to HTTP
// statuses; anything not wrapping one of them is reported as a server error
// without detail.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrConflict        = errors.New("conflict")
)
