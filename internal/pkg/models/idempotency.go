package models

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyRecord maps a client-supplied idempotency key to the
// transaction it admitted and the outcome snapshot replayed to
// duplicate requests. A key maps to exactly one transaction for its
// whole validity window.
type IdempotencyRecord struct {
	Key           string           `json:"key" db:"idempotency_key"`
	Fingerprint   string           `json:"fingerprint" db:"fingerprint"`
	TransactionID uuid.UUID        `json:"transaction_id" db:"transaction_id"`
	Outcome       *AdmissionResult `json:"outcome,omitempty" db:"-"`
	ExpiresAt     time.Time        `json:"expires_at" db:"expires_at"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
}

// Reservation is the result of Reserve: either this caller created the
// record (and owns the gateway call) or the key was already taken.
type Reservation struct {
	Created bool
	Record  IdempotencyRecord
}
