// Package common defines shared constants and sentinel errors used across
// client and server layers of TodoVault. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors (blank input, unsupported values).
	ErrValidation = errors.New("validation error")

	// Session errors.
	ErrNoSession = errors.New("no active session")

	// Recovery flow errors.
	ErrCodeMismatch = errors.New("recovery code mismatch")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
