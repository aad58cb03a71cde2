package domain

import "errors"

// Cross-cutting sentinel errors. Services return these (possibly wrapped with
// %w) so controllers can map them to HTTP status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)
