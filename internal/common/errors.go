// Package common defines shared constants and sentinel errors used across
// the StudyPilot client and the development server. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Service-level errors (generic flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorNotFound     = errors.New("not found")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Account errors.
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidLogin = errors.New("invalid email or password")

	// Upload errors.
	ErrTooManyFiles    = errors.New("too many files in one batch")
	ErrNoFilesSelected = errors.New("no files selected")
)
