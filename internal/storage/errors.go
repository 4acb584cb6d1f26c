package storage

import "errors"

// Sentinel errors shared by every backend. Implementations wrap them so
// callers can match with errors.Is.
var (
	// ErrNotFound is returned when a season, label or run has no stored data.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when an append-only store (keepers, corrections,
	// run audit) already holds the key being inserted.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidInput is returned for records missing required fields.
	ErrInvalidInput = errors.New("invalid input")
)
