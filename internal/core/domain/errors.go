package domain

import "errors"

// Sentinel errors mapped exactly once, at each service's outer surface, to
// the taxonomy in the error handling design (see internal/api/error_handler.go).
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotShared          = errors.New("process not shared with this partner")
	ErrMalformed          = errors.New("malformed request")
	ErrIntegrity          = errors.New("integrity check failed")
	ErrIntegration        = errors.New("integration failure")
	ErrInternal           = errors.New("internal error")
	ErrTimeout            = errors.New("operation timed out")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrProcessNotFound    = errors.New("process not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
)
