package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/novapay/paycore/internal/pkg/logger"
	"github.com/novapay/paycore/internal/pkg/models"
)

// Transition causes recorded in the ledger history.
const (
	causeGatewayApproved = "gateway_approved"
	causeAutoCapture     = "auto_capture"
	causeGatewayDeclined = "gateway_declined"
	causeGatewayUnknown  = "gateway_unknown"
	causeSettlement      = "settlement_event"
	causeReconciliation  = "reconciliation"
)

// Admit accepts a payment intent and drives it through the gateway.
// Exactly one gateway call happens per idempotency key: the caller that
// wins the reservation owns the charge, everyone else replays its
// outcome.
func (uc *PaymentUC) Admit(ctx context.Context, intent *models.PaymentIntent) (*models.AdmissionResult, error) {
	if err := validateIntent(intent); err != nil {
		return nil, err
	}
	if intent.ID == uuid.Nil {
		intent.ID = uuid.New()
	}
	if intent.CreatedAt.IsZero() {
		intent.CreatedAt = time.Now().UTC()
	}

	txID := uuid.New()
	reservation, err := uc.idemRepo.Reserve(ctx, intent.IdempotencyKey, intent.Fingerprint(), txID)
	if err != nil {
		return nil, err
	}

	if !reservation.Created {
		return uc.replayAdmission(ctx, intent.IdempotencyKey, &reservation.Record)
	}

	tx, err := uc.ledgerRepo.CreateTransaction(ctx, txID, intent)
	if err != nil {
		// No ledger row and no gateway call happened. Give the key back
		// so the client's retry re-admits instead of replaying a
		// transaction that does not exist.
		if relErr := uc.idemRepo.Release(ctx, intent.IdempotencyKey, txID); relErr != nil {
			logger.Error("Failed to release idempotency key after create failure",
				logger.String("idempotency_key", intent.IdempotencyKey),
				logger.Err(relErr))
		}
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	logger.Info("Payment admitted",
		logger.String("transaction_id", tx.ID.String()),
		logger.String("merchant_id", tx.MerchantID),
		logger.Int64("amount_minor", tx.AmountMinor),
		logger.String("currency", tx.Currency))

	result := uc.processCharge(ctx, tx, intent.PaymentMethodToken)

	if err := uc.idemRepo.SaveOutcome(ctx, intent.IdempotencyKey, result); err != nil {
		logger.Warn("Failed to save admission outcome",
			logger.String("idempotency_key", intent.IdempotencyKey),
			logger.Err(err))
	}
	return result, nil
}

// processCharge submits the charge and maps the tri-state gateway
// outcome onto ledger transitions.
func (uc *PaymentUC) processCharge(ctx context.Context, tx *models.Transaction, paymentMethodToken string) *models.AdmissionResult {
	result, err := uc.gateway.AuthorizeAndCapture(ctx, tx, paymentMethodToken)
	if err != nil {
		// The adapter folds its own failures into Unknown; an error
		// here still means the charge may have gone through.
		result = &models.GatewayResult{Outcome: models.OutcomeUnknown, Message: err.Error()}
	}

	admission := &models.AdmissionResult{TransactionID: tx.ID}

	switch result.Outcome {
	case models.OutcomeApproved:
		if err := uc.applyTransition(ctx, tx, models.TransitionInput{
			From:           tx.State,
			To:             models.StateAuthorized,
			Cause:          causeGatewayApproved,
			GatewayRef:     result.Reference,
			GatewayCode:    result.Code,
			GatewayMessage: result.Message,
		}); err != nil {
			return uc.transitionFailure(tx, admission, err)
		}
		if err := uc.applyTransition(ctx, tx, models.TransitionInput{
			From:  models.StateAuthorized,
			To:    models.StateCaptured,
			Cause: causeAutoCapture,
		}); err != nil {
			return uc.transitionFailure(tx, admission, err)
		}
		admission.Status = models.StateCaptured
		admission.GatewayRef = result.Reference

	case models.OutcomeDeclined:
		if err := uc.applyTransition(ctx, tx, models.TransitionInput{
			From:           tx.State,
			To:             models.StateDeclined,
			Cause:          causeGatewayDeclined,
			GatewayRef:     result.Reference,
			GatewayCode:    result.Code,
			GatewayMessage: result.Message,
		}); err != nil {
			return uc.transitionFailure(tx, admission, err)
		}
		admission.Status = models.StateDeclined
		admission.DeclineReason = declineReason(result)

	default:
		logger.Warn("Gateway outcome unknown, parking transaction",
			logger.String("transaction_id", tx.ID.String()),
			logger.String("message", result.Message))
		if err := uc.applyTransition(ctx, tx, models.TransitionInput{
			From:      tx.State,
			To:        models.StateAmbiguous,
			Cause:     causeGatewayUnknown,
			LastError: result.Message,
		}); err != nil {
			return uc.transitionFailure(tx, admission, err)
		}
		admission.Status = models.StateAmbiguous
	}

	return admission
}

// replayAdmission serves a duplicate request from the reserved record.
func (uc *PaymentUC) replayAdmission(ctx context.Context, key string, record *models.IdempotencyRecord) (*models.AdmissionResult, error) {
	logger.Info("Replaying admission for duplicate idempotency key",
		logger.String("idempotency_key", key),
		logger.String("transaction_id", record.TransactionID.String()))

	if record.Outcome != nil {
		outcome := *record.Outcome
		outcome.Replayed = true
		return &outcome, nil
	}

	// No snapshot yet: the owning request is still in flight. Report
	// the live ledger state instead of blocking on it.
	tx, err := uc.ledgerRepo.GetTransaction(ctx, record.TransactionID)
	if err != nil {
		if errors.Is(err, models.ErrTransactionNotFound) {
			return &models.AdmissionResult{
				TransactionID: record.TransactionID,
				Status:        models.StatePending,
				Replayed:      true,
			}, nil
		}
		return nil, err
	}
	return &models.AdmissionResult{
		TransactionID: tx.ID,
		Status:        tx.State,
		GatewayRef:    tx.GatewayRef,
		Replayed:      true,
	}, nil
}

// GetTransaction returns the transaction with its full state history.
func (uc *PaymentUC) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return uc.ledgerRepo.GetTransaction(ctx, id)
}

// Refund reverses a captured or authorized charge through the gateway.
func (uc *PaymentUC) Refund(ctx context.Context, id uuid.UUID, amountMinor int64, cause string) (*models.Transaction, error) {
	tx, err := uc.ledgerRepo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if amountMinor <= 0 || amountMinor > tx.AmountMinor {
		return nil, fmt.Errorf("refund amount %d out of range for transaction amount %d", amountMinor, tx.AmountMinor)
	}
	if !models.CanTransition(tx.State, models.StateRefunded) {
		return nil, fmt.Errorf("cannot refund transaction in state %s: %w", tx.State, models.ErrInvalidTransition)
	}

	result, err := uc.gateway.Refund(ctx, tx, amountMinor)
	if err != nil {
		return nil, fmt.Errorf("refund request failed: %w", err)
	}
	if result.Outcome != models.OutcomeApproved {
		return nil, fmt.Errorf("refund not approved: %s (%s)", result.Message, result.Code)
	}

	if err := uc.applyTransition(ctx, tx, models.TransitionInput{
		From:           tx.State,
		To:             models.StateRefunded,
		Cause:          cause,
		GatewayCode:    result.Code,
		GatewayMessage: result.Message,
	}); err != nil {
		return nil, err
	}
	return uc.ledgerRepo.GetTransaction(ctx, id)
}

// Void cancels an authorized or captured charge before settlement.
func (uc *PaymentUC) Void(ctx context.Context, id uuid.UUID, cause string) (*models.Transaction, error) {
	tx, err := uc.ledgerRepo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(tx.State, models.StateVoided) {
		return nil, fmt.Errorf("cannot void transaction in state %s: %w", tx.State, models.ErrInvalidTransition)
	}

	result, err := uc.gateway.Void(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("void request failed: %w", err)
	}
	if result.Outcome != models.OutcomeApproved {
		return nil, fmt.Errorf("void not approved: %s (%s)", result.Message, result.Code)
	}

	if err := uc.applyTransition(ctx, tx, models.TransitionInput{
		From:           tx.State,
		To:             models.StateVoided,
		Cause:          cause,
		GatewayCode:    result.Code,
		GatewayMessage: result.Message,
	}); err != nil {
		return nil, err
	}
	return uc.ledgerRepo.GetTransaction(ctx, id)
}

// applyTransition commits one ledger transition and announces it. A
// lost publish is logged, never rolled back: the ledger is the source
// of truth and consumers can re-read it.
func (uc *PaymentUC) applyTransition(ctx context.Context, tx *models.Transaction, input models.TransitionInput) error {
	if err := uc.ledgerRepo.Transition(ctx, tx.ID, input); err != nil {
		return err
	}
	tx.State = input.To
	if input.GatewayRef != "" {
		tx.GatewayRef = input.GatewayRef
	}

	event := &models.TransitionEvent{
		TransactionID: tx.ID,
		FromState:     input.From,
		ToState:       input.To,
		Cause:         input.Cause,
		GatewayRef:    tx.GatewayRef,
		Timestamp:     time.Now().UTC(),
	}
	if err := uc.PaymentGW.PublishTransitionEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish transition event",
			logger.String("transaction_id", tx.ID.String()),
			logger.String("to_state", string(input.To)),
			logger.Err(err))
	}
	return nil
}

// transitionFailure reports the ledger state after a transition could
// not be committed. ErrInvalidTransition here means a concurrent writer
// advanced the row first, so the stored state wins.
func (uc *PaymentUC) transitionFailure(tx *models.Transaction, admission *models.AdmissionResult, err error) *models.AdmissionResult {
	logger.Error("Failed to record gateway outcome",
		logger.String("transaction_id", tx.ID.String()),
		logger.Err(err))
	admission.Status = tx.State
	return admission
}

func validateIntent(intent *models.PaymentIntent) error {
	if intent.IdempotencyKey == "" {
		return fmt.Errorf("idempotency key is required")
	}
	if intent.MerchantID == "" {
		return fmt.Errorf("merchant id is required")
	}
	if intent.AmountMinor <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if len(intent.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter code")
	}
	if intent.PaymentMethodToken == "" {
		return fmt.Errorf("payment method token is required")
	}
	return nil
}

func declineReason(result *models.GatewayResult) string {
	if result.Message != "" {
		return result.Message
	}
	return result.Code
}
