package gateway

import (
	"context"

	"github.com/novapay/paycore/internal/pkg/constants"
	"github.com/novapay/paycore/internal/pkg/models"
	natspkg "github.com/novapay/paycore/internal/pkg/nats"
)

// EventGateway publishes transaction lifecycle events over NATS.
type EventGateway struct {
	cfg      *models.Config
	producer *natspkg.Producer
}

// NewEventGateway creates a new NATS event gateway
func NewEventGateway(cfg *models.Config, client *natspkg.Client) *EventGateway {
	return &EventGateway{
		cfg:      cfg,
		producer: natspkg.NewProducer(client),
	}
}

// PublishTransitionEvent announces a committed state change to
// downstream consumers.
func (g *EventGateway) PublishTransitionEvent(ctx context.Context, event *models.TransitionEvent) error {
	subject := g.cfg.Settlement.EventsSubject
	if subject == "" {
		subject = constants.SubjectTransactionUpdated
	}
	return g.producer.Publish(subject, event)
}

// PublishReviewRequired flags a transaction that reconciliation gave
// up on, so an operator queue can pick it up.
func (g *EventGateway) PublishReviewRequired(ctx context.Context, tx *models.Transaction) error {
	return g.producer.Publish(constants.SubjectTransactionReview, tx)
}

// RepublishSettlementEvent puts a held settlement event back on the
// ingest subject for another delivery attempt.
func (g *EventGateway) RepublishSettlementEvent(ctx context.Context, event *models.SettlementEvent) error {
	subject := g.cfg.Settlement.Subject
	if subject == "" {
		subject = constants.SubjectSettlementEvents
	}
	return g.producer.Publish(subject, event)
}
