package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/novapay/paycore/internal/pkg/models"
)

// CreateTransaction persists the intent and its transaction in PENDING
// state, with the opening history entry, in one database transaction.
func (r *PaymentRepo) CreateTransaction(ctx context.Context, txID uuid.UUID, intent *models.PaymentIntent) (*models.Transaction, error) {
	now := time.Now().UTC()

	trx := &models.Transaction{
		ID:             txID,
		IntentID:       intent.ID,
		MerchantID:     intent.MerchantID,
		AmountMinor:    intent.AmountMinor,
		Currency:       intent.Currency,
		State:          models.StatePending,
		IdempotencyKey: intent.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO payment_intents (
			id, merchant_id, amount_minor, currency,
			payment_method_token, idempotency_key, created_at
		) VALUES (
			:id, :merchant_id, :amount_minor, :currency,
			:payment_method_token, :idempotency_key, :created_at
		)
	`, intent)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO transactions (
			id, intent_id, merchant_id, amount_minor, currency, state,
			gateway_ref, idempotency_key, last_error, retry_count,
			reconcile_passes, needs_review, created_at, updated_at
		) VALUES (
			:id, :intent_id, :merchant_id, :amount_minor, :currency, :state,
			:gateway_ref, :idempotency_key, :last_error, :retry_count,
			:reconcile_passes, :needs_review, :created_at, :updated_at
		)
	`, trx)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	change := models.StateChange{
		ID:            uuid.New(),
		TransactionID: txID,
		FromState:     "",
		ToState:       models.StatePending,
		Cause:         "admitted",
		CreatedAt:     now,
	}
	if err := insertStateChange(ctx, tx, &change); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	trx.History = []models.StateChange{change}
	return trx, nil
}

// Transition moves a transaction between states with an optimistic
// from-state guard. The conditional UPDATE serializes competing
// writers: exactly one wins, the rest get ErrInvalidTransition.
func (r *PaymentRepo) Transition(ctx context.Context, txID uuid.UUID, input models.TransitionInput) error {
	if !models.CanTransition(input.From, input.To) {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, input.From, input.To)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE transactions
		SET state = $1,
		    gateway_ref = CASE WHEN $2 <> '' THEN $2 ELSE gateway_ref END,
		    last_error = $3,
		    updated_at = NOW()
		WHERE id = $4 AND state = $5
	`, input.To, input.GatewayRef, input.LastError, txID, input.From)
	if err != nil {
		return fmt.Errorf("failed to update transaction state: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Lost the race or wrong expectation. Distinguish a missing
		// row from a state mismatch for the caller.
		var state models.TransactionState
		err := tx.QueryRowxContext(ctx, `SELECT state FROM transactions WHERE id = $1`, txID).Scan(&state)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrTransactionNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read transaction state: %w", err)
		}
		return fmt.Errorf("%w: expected %s, stored %s", models.ErrInvalidTransition, input.From, state)
	}

	change := models.StateChange{
		ID:             uuid.New(),
		TransactionID:  txID,
		FromState:      input.From,
		ToState:        input.To,
		Cause:          input.Cause,
		GatewayCode:    input.GatewayCode,
		GatewayMessage: input.GatewayMessage,
		CreatedAt:      time.Now().UTC(),
	}
	if err := insertStateChange(ctx, tx, &change); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertStateChange(ctx context.Context, tx *sqlx.Tx, change *models.StateChange) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO transaction_events (
			id, transaction_id, from_state, to_state, cause,
			gateway_code, gateway_message, created_at
		) VALUES (
			:id, :transaction_id, :from_state, :to_state, :cause,
			:gateway_code, :gateway_message, :created_at
		)
	`, change)
	if err != nil {
		return fmt.Errorf("failed to append state change: %w", err)
	}
	return nil
}

// GetTransaction retrieves a transaction with its full state history.
func (r *PaymentRepo) GetTransaction(ctx context.Context, txID uuid.UUID) (*models.Transaction, error) {
	return r.getTransactionByField(ctx, "id", txID.String())
}

// GetTransactionByGatewayRef retrieves a transaction by the reference
// the gateway assigned to it.
func (r *PaymentRepo) GetTransactionByGatewayRef(ctx context.Context, gatewayRef string) (*models.Transaction, error) {
	return r.getTransactionByField(ctx, "gateway_ref", gatewayRef)
}

func (r *PaymentRepo) getTransactionByField(ctx context.Context, field, value string) (*models.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT id, intent_id, merchant_id, amount_minor, currency, state,
		       gateway_ref, idempotency_key, last_error, retry_count,
		       reconcile_passes, needs_review, created_at, updated_at
		FROM transactions
		WHERE %s = $1
	`, field)

	var trx models.Transaction
	if err := r.db.GetContext(ctx, &trx, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	var history []models.StateChange
	err := r.db.SelectContext(ctx, &history, `
		SELECT id, transaction_id, from_state, to_state, cause,
		       gateway_code, gateway_message, created_at
		FROM transaction_events
		WHERE transaction_id = $1
		ORDER BY created_at ASC
	`, trx.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}
	trx.History = history

	return &trx, nil
}

// ListStuck returns non-reviewed transactions in the given states older
// than cutoff, oldest first.
func (r *PaymentRepo) ListStuck(ctx context.Context, states []models.TransactionState, cutoff time.Time, limit int) ([]*models.Transaction, error) {
	query, args, err := sqlx.In(`
		SELECT id, intent_id, merchant_id, amount_minor, currency, state,
		       gateway_ref, idempotency_key, last_error, retry_count,
		       reconcile_passes, needs_review, created_at, updated_at
		FROM transactions
		WHERE state IN (?) AND updated_at < ? AND needs_review = false
		ORDER BY updated_at ASC
		LIMIT ?
	`, states, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build stuck query: %w", err)
	}

	var stuck []*models.Transaction
	if err := r.db.SelectContext(ctx, &stuck, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list stuck transactions: %w", err)
	}
	return stuck, nil
}

// IncrementReconcilePasses bumps the sweep counter and returns the new
// value so the worker can decide on escalation.
func (r *PaymentRepo) IncrementReconcilePasses(ctx context.Context, txID uuid.UUID) (int, error) {
	var passes int
	err := r.db.QueryRowxContext(ctx, `
		UPDATE transactions
		SET reconcile_passes = reconcile_passes + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING reconcile_passes
	`, txID).Scan(&passes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, models.ErrTransactionNotFound
		}
		return 0, fmt.Errorf("failed to increment reconcile passes: %w", err)
	}
	return passes, nil
}

// MarkNeedsReview escalates a transaction to operator review. Reviewed
// transactions are excluded from later sweeps and never auto-failed.
func (r *PaymentRepo) MarkNeedsReview(ctx context.Context, txID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET needs_review = true, updated_at = NOW()
		WHERE id = $1
	`, txID)
	if err != nil {
		return fmt.Errorf("failed to mark transaction for review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrTransactionNotFound
	}
	return nil
}
