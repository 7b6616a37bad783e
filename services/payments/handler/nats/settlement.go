package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/novapay/paycore/internal/pkg/constants"
	"github.com/novapay/paycore/internal/pkg/logger"
	"github.com/novapay/paycore/internal/pkg/models"
	natspkg "github.com/novapay/paycore/internal/pkg/nats"
	"github.com/novapay/paycore/services/payments"
)

// NatsHandler handles NATS subscriptions for the payments service
type NatsHandler struct {
	paymentUC  payments.PaymentUC
	natsClient *natspkg.Client
	subs       []*nats.Subscription
	cfg        *models.Config
}

// NewNatsHandler creates a new payments NATS handler
func NewNatsHandler(paymentUC payments.PaymentUC, natsClient *natspkg.Client, cfg *models.Config) *NatsHandler {
	return &NatsHandler{
		paymentUC:  paymentUC,
		natsClient: natsClient,
		cfg:        cfg,
		subs:       make([]*nats.Subscription, 0),
	}
}

// InitNATSConsumers initializes all NATS consumers for the payments
// service. Settlement events use a queue group so scaled-out instances
// split the stream instead of each consuming every event.
func (h *NatsHandler) InitNATSConsumers() error {
	subject := h.cfg.Settlement.Subject
	if subject == "" {
		subject = constants.SubjectSettlementEvents
	}
	queueGroup := h.cfg.Settlement.QueueGroup
	if queueGroup == "" {
		queueGroup = constants.QueueGroupSettlement
	}

	sub, err := h.natsClient.QueueSubscribe(subject, queueGroup, func(msg *nats.Msg) {
		if err := h.handleSettlementEvent(msg.Data); err != nil {
			logger.Error("Error handling settlement event", logger.Err(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to settlement events: %w", err)
	}
	h.subs = append(h.subs, sub)

	return nil
}

// handleSettlementEvent processes one settlement fact from the gateway
func (h *NatsHandler) handleSettlementEvent(msg []byte) error {
	var event models.SettlementEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		logger.Warn("Failed to unmarshal settlement event", logger.Err(err))
		return fmt.Errorf("failed to unmarshal settlement event: %w", err)
	}
	if event.EventID == "" || event.GatewayRef == "" {
		return fmt.Errorf("settlement event missing event_id or gateway_ref")
	}

	event.Payload = msg
	event.ReceivedAt = time.Now().UTC()
	event.ComputeChecksum()

	logger.Info("Received settlement event",
		logger.String("event_id", event.EventID),
		logger.String("gateway_ref", event.GatewayRef),
		logger.String("reported_status", string(event.ReportedStatus)))

	return h.paymentUC.ApplySettlementEvent(context.Background(), &event)
}

// Unsubscribe drains all subscriptions.
func (h *NatsHandler) Unsubscribe() {
	for _, sub := range h.subs {
		if err := sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe", logger.Err(err))
		}
	}
	h.subs = h.subs[:0]
}
