package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIdentifierGeneration indicates a client identifier could not be drawn
	// within the bounded number of first-character attempts.
	ErrIdentifierGeneration = errors.New("identifier generation failed")

	// ErrStoreUnavailable indicates the key-value store is not configured.
	ErrStoreUnavailable = errors.New("key-value store unavailable")

	// ErrSearchUnavailable indicates the product catalog is not configured.
	ErrSearchUnavailable = errors.New("search endpoint unavailable")

	// ErrUnsupportedType indicates an unknown storage backend or exporter.
	ErrUnsupportedType = errors.New("unsupported type")
)
