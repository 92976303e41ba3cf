// Package common defines the error kinds and small helpers shared by the
// credential store, the hasher, the services and both transports. Callers
// match errors with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level error kinds surfaced to transports.
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInternal           = errors.New("internal error")

	// Token errors (malformed, bad signature, expired, missing subject).
	ErrInvalidToken = errors.New("invalid token")
)
