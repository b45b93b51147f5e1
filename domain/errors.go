package domain

import "errors"

// Stable error kinds the rest layer can branch on. Services wrap these
// with %w and callers match with errors.Is, so storage error detail never
// leaks to clients.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)
