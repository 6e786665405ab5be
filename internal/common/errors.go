// Package common defines shared constants and sentinel errors used across
// the GrowFlow server and client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrorDuplicateIdentity = errors.New("user already exists")

	// Service-level errors.
	ErrorValidation         = errors.New("validation error")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorForbidden          = errors.New("not authorized")
	ErrorServiceUnavailable = errors.New("service unavailable")
	ErrorRateLimited        = errors.New("too many requests")

	// Session token errors.
	ErrMissingToken   = errors.New("missing token")
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
	ErrInvalidToken   = errors.New("invalid token")
)
