// Package common defines shared constants and sentinel errors used across
// the vidhub server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// ErrVersionConflict is returned by compare-and-swap style updates when
	// the stored value no longer matches the expected one.
	ErrVersionConflict = errors.New("version conflict")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Credential errors.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token lifecycle errors. Signature, expiry and stored-value mismatch are
	// all reported to callers as ErrInvalidToken; the concrete cause is only
	// logged, so a caller cannot probe which check failed.
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
