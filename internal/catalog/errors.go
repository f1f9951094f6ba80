package catalog

import "errors"

// Error taxonomy surfaced to HTTP callers. Operations wrap these sentinels
// with detail; handlers translate with errors.Is.
var (
	// ErrInvalid marks malformed or missing input (400).
	ErrInvalid = errors.New("invalid input")

	// ErrDuplicate marks a record that collides with an existing one (409).
	ErrDuplicate = errors.New("book with these characteristics already exists")

	// ErrNotFound marks an identifier that matches no record (404).
	ErrNotFound = errors.New("book not found")
)
