package payments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/novapay/paycore/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/novapay/paycore/services/payments LedgerRepo,IdempotencyRepo,EventRepo

// LedgerRepo is the durable transaction ledger. It is the only owner
// of transaction rows; every mutation goes through Transition.
type LedgerRepo interface {
	CreateTransaction(ctx context.Context, txID uuid.UUID, intent *models.PaymentIntent) (*models.Transaction, error)
	Transition(ctx context.Context, txID uuid.UUID, input models.TransitionInput) error
	GetTransaction(ctx context.Context, txID uuid.UUID) (*models.Transaction, error)
	GetTransactionByGatewayRef(ctx context.Context, gatewayRef string) (*models.Transaction, error)

	// ListStuck returns non-reviewed transactions in the given states
	// older than cutoff, oldest first.
	ListStuck(ctx context.Context, states []models.TransactionState, cutoff time.Time, limit int) ([]*models.Transaction, error)
	IncrementReconcilePasses(ctx context.Context, txID uuid.UUID) (int, error)
	MarkNeedsReview(ctx context.Context, txID uuid.UUID) error
}

// IdempotencyRepo is the durable idempotency store.
type IdempotencyRepo interface {
	// Reserve atomically claims the key for txID. Exactly one caller
	// per key observes Created; all others observe Existing with the
	// original transaction ID. Returns ErrIdempotencyConflict when the
	// key was reused with a different fingerprint.
	Reserve(ctx context.Context, key, fingerprint string, txID uuid.UUID) (*models.Reservation, error)

	// SaveOutcome snapshots the admission outcome so later duplicates
	// replay it without a gateway call.
	SaveOutcome(ctx context.Context, key string, outcome *models.AdmissionResult) error

	// Release frees a reservation whose admission could not proceed,
	// provided txID still owns the key and no outcome was stored.
	Release(ctx context.Context, key string, txID uuid.UUID) error
}

// EventRepo records consumed settlement events for durable dedup and
// requeue of stalled processing.
type EventRepo interface {
	// RecordEvent persists the event in PROCESSING status. Returns
	// ErrDuplicateEvent when the checksum was seen before.
	RecordEvent(ctx context.Context, event *models.SettlementEvent) error
	MarkEventStatus(ctx context.Context, checksum, status, failureReason string) error
	ListStaleProcessing(ctx context.Context, cutoff time.Time, limit int) ([]*models.SettlementEvent, error)
}
