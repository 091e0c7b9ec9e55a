package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a request is structurally invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden is returned when the caller is not allowed to access the entity.
	ErrForbidden = errors.New("forbidden")
)
