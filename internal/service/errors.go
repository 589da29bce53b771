package service

import "errors"

// Service-level error taxonomy. Handlers map each sentinel to exactly
// one HTTP status and user-facing message; anything else is an internal
// error and its detail never leaves the process.
var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("access denied")
	ErrGone               = errors.New("record has expired")
	ErrPayloadTooLarge    = errors.New("payload exceeds size ceiling")
	ErrInvalidContentType = errors.New("content type not allowed")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrContentRequired    = errors.New("content is required")
)
