package domain

import "errors"

// Ceremony and credential-management failure kinds. Services return these
// (possibly wrapped); controllers map them to HTTP statuses with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("no active ceremony challenge")
	ErrVerificationFailed = errors.New("credential verification failed")
	ErrConflict           = errors.New("credential already registered")
	ErrValidationFailed   = errors.New("validation failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
