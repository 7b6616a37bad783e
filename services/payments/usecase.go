package payments

import (
	"context"

	"github.com/google/uuid"

	"github.com/novapay/paycore/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/novapay/paycore/services/payments PaymentUC

// PaymentUC is the transaction orchestrator interface
type PaymentUC interface {
	// Admit accepts a payment intent, deduplicated by idempotency key,
	// and drives it through the gateway.
	Admit(ctx context.Context, intent *models.PaymentIntent) (*models.AdmissionResult, error)

	// GetTransaction returns the transaction with its state history.
	GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)

	// ApplySettlementEvent consumes an asynchronous settlement fact.
	// Reprocessing the same event is a no-op.
	ApplySettlementEvent(ctx context.Context, event *models.SettlementEvent) error

	// Refund reverses a captured or authorized transaction, fully or
	// partially, through the gateway.
	Refund(ctx context.Context, id uuid.UUID, amountMinor int64, cause string) (*models.Transaction, error)

	// Void cancels an authorized or captured transaction before
	// settlement.
	Void(ctx context.Context, id uuid.UUID, cause string) (*models.Transaction, error)
}
