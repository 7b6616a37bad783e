package payments

import (
	"context"

	"github.com/novapay/paycore/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/novapay/paycore/services/payments GatewayClient,PaymentGW

// GatewayClient is the adapter over the external card processor. All
// calls return a tri-state result; a non-nil error means the outcome
// could not be determined and must be treated as Unknown, never as a
// decline.
type GatewayClient interface {
	AuthorizeAndCapture(ctx context.Context, tx *models.Transaction, paymentMethodToken string) (*models.GatewayResult, error)
	Refund(ctx context.Context, tx *models.Transaction, amountMinor int64) (*models.GatewayResult, error)
	Void(ctx context.Context, tx *models.Transaction) (*models.GatewayResult, error)

	// Status is the idempotent reconciliation inquiry: it reads the
	// authoritative transaction state, never creates a new charge.
	Status(ctx context.Context, reference string) (*models.GatewayResult, error)
}

// PaymentGW publishes transaction lifecycle events for external
// consumers (metrics, tracing, downstream systems).
type PaymentGW interface {
	PublishTransitionEvent(ctx context.Context, event *models.TransitionEvent) error
	PublishReviewRequired(ctx context.Context, tx *models.Transaction) error
	RepublishSettlementEvent(ctx context.Context, event *models.SettlementEvent) error
}
