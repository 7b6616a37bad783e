package models

import "errors"

// Sentinel errors shared across the payment core.
var (
	// ErrIdempotencyConflict means the idempotency key was reused with
	// a different request fingerprint. Client error, never retried.
	ErrIdempotencyConflict = errors.New("idempotency key reused with different request fingerprint")

	// ErrInvalidTransition means the stored state did not match the
	// expected from-state of a ledger transition. This is the
	// optimistic concurrency guard firing, not a data corruption.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrTransactionNotFound means no ledger row matched the lookup.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDuplicateEvent means a settlement event with the same checksum
	// was already recorded.
	ErrDuplicateEvent = errors.New("duplicate settlement event")
)
