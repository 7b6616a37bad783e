package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentIntent is the immutable admission request. It is created once
// when a payment enters the orchestrator and is never mutated afterwards.
type PaymentIntent struct {
	ID                 uuid.UUID         `json:"id" db:"id"`
	MerchantID         string            `json:"merchant_id" db:"merchant_id"`
	AmountMinor        int64             `json:"amount_minor" db:"amount_minor"`
	Currency           string            `json:"currency" db:"currency"`
	PaymentMethodToken string            `json:"payment_method_token" db:"payment_method_token"`
	IdempotencyKey     string            `json:"idempotency_key" db:"idempotency_key"`
	Metadata           map[string]string `json:"metadata,omitempty" db:"-"`
	CreatedAt          time.Time         `json:"created_at" db:"created_at"`
}

// Fingerprint returns the SHA-256 hash of the normalized intent fields.
// Two requests with the same idempotency key must produce the same
// fingerprint to be treated as the same logical attempt.
func (p *PaymentIntent) Fingerprint() string {
	parts := []string{
		p.MerchantID,
		fmt.Sprintf("%d", p.AmountMinor),
		strings.ToUpper(p.Currency),
		p.PaymentMethodToken,
	}

	// Metadata participates in the fingerprint in key order so map
	// iteration order cannot change the hash.
	keys := make([]string, 0, len(p.Metadata))
	for k := range p.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+p.Metadata[k])
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// AdmissionResult is what a caller gets back from payment admission,
// whether the request was processed fresh or replayed from the
// idempotency store.
type AdmissionResult struct {
	TransactionID uuid.UUID        `json:"transaction_id"`
	Status        TransactionState `json:"status"`
	GatewayRef    string           `json:"gateway_ref,omitempty"`
	DeclineReason string           `json:"decline_reason,omitempty"`
	Replayed      bool             `json:"replayed"`
}
