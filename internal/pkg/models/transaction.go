package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionState is the current position of a transaction in its
// lifecycle state machine.
type TransactionState string

const (
	StatePending    TransactionState = "PENDING"
	StateAuthorized TransactionState = "AUTHORIZED"
	StateCaptured   TransactionState = "CAPTURED"
	StateSettled    TransactionState = "SETTLED"
	StateDeclined   TransactionState = "DECLINED"
	StateFailed     TransactionState = "FAILED"
	StateVoided     TransactionState = "VOIDED"
	StateRefunded   TransactionState = "REFUNDED"
	StateAmbiguous  TransactionState = "AMBIGUOUS"
)

// allowedTransitions maps each state to the states it may move to.
// AMBIGUOUS is deliberately non-terminal: it is only exited by a
// reconciliation result or a matching settlement event.
var allowedTransitions = map[TransactionState][]TransactionState{
	StatePending:    {StateAuthorized, StateDeclined, StateAmbiguous, StateFailed},
	StateAuthorized: {StateCaptured, StateVoided, StateRefunded, StateFailed},
	StateCaptured:   {StateSettled, StateVoided, StateRefunded, StateFailed},
	StateAmbiguous:  {StateAuthorized, StateCaptured, StateDeclined, StateFailed},
	StateSettled:    {},
	StateDeclined:   {},
	StateFailed:     {},
	StateVoided:     {},
	StateRefunded:   {},
}

// CanTransition reports whether moving from one state to another is a
// valid edge of the state machine.
func CanTransition(from, to TransactionState) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state has no outgoing edges.
func (s TransactionState) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Transaction is the mutable aggregate tracked by the ledger. It is
// owned by the ledger repository; all state changes go through
// Transition, never direct field writes.
type Transaction struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	IntentID        uuid.UUID        `json:"intent_id" db:"intent_id"`
	MerchantID      string           `json:"merchant_id" db:"merchant_id"`
	AmountMinor     int64            `json:"amount_minor" db:"amount_minor"`
	Currency        string           `json:"currency" db:"currency"`
	State           TransactionState `json:"state" db:"state"`
	GatewayRef      string           `json:"gateway_ref,omitempty" db:"gateway_ref"`
	IdempotencyKey  string           `json:"idempotency_key" db:"idempotency_key"`
	LastError       string           `json:"last_error,omitempty" db:"last_error"`
	RetryCount      int              `json:"retry_count" db:"retry_count"`
	ReconcilePasses int              `json:"reconcile_passes" db:"reconcile_passes"`
	NeedsReview     bool             `json:"needs_review" db:"needs_review"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`

	// History is the append-only transition log, oldest first.
	History []StateChange `json:"history,omitempty" db:"-"`
}

// StateChange is one entry of a transaction's append-only history.
type StateChange struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	TransactionID  uuid.UUID        `json:"transaction_id" db:"transaction_id"`
	FromState      TransactionState `json:"from_state" db:"from_state"`
	ToState        TransactionState `json:"to_state" db:"to_state"`
	Cause          string           `json:"cause" db:"cause"`
	GatewayCode    string           `json:"gateway_code,omitempty" db:"gateway_code"`
	GatewayMessage string           `json:"gateway_message,omitempty" db:"gateway_message"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
}

// TransitionInput describes one requested ledger transition. From is
// the expected current state; the write fails when the stored state no
// longer matches it.
type TransitionInput struct {
	From           TransactionState
	To             TransactionState
	Cause          string
	GatewayRef     string
	GatewayCode    string
	GatewayMessage string
	LastError      string
}

// TransitionEvent is the structured record published for every state
// change, consumed by external metrics and tracing collectors.
type TransitionEvent struct {
	TransactionID uuid.UUID        `json:"transaction_id"`
	FromState     TransactionState `json:"from_state"`
	ToState       TransactionState `json:"to_state"`
	Cause         string           `json:"cause"`
	GatewayRef    string           `json:"gateway_ref,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}
