package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/novapay/paycore/internal/pkg/constants"
	"github.com/novapay/paycore/internal/pkg/logger"
	"github.com/novapay/paycore/internal/pkg/models"
)

// RecordEvent persists a settlement event in PROCESSING status. The
// checksum primary key makes the insert the durable dedup point; redis
// SETNX in front of it absorbs most replays without a postgres write.
func (r *PaymentRepo) RecordEvent(ctx context.Context, event *models.SettlementEvent) error {
	dedupKey := fmt.Sprintf(constants.KeySettlementChecksum, event.Checksum)
	ttl := time.Duration(r.cfg.Idempotency.CacheTTLMins) * time.Minute

	won, redisErr := r.redisClient.SetNX(ctx, dedupKey, event.EventID, ttl)
	if redisErr != nil {
		// Redis down degrades to postgres-only dedup.
		logger.Warn("Settlement dedup fast path unavailable", logger.Err(redisErr))
	} else if !won {
		return models.ErrDuplicateEvent
	}

	// New checksums insert; rows parked back in PENDING by the requeue
	// worker are reclaimed. Rows in any other status stay untouched and
	// surface as duplicates.
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO settlement_events (
			checksum, event_id, gateway_ref, reported_status, payload,
			status, failure_reason, occurred_at, received_at
		) VALUES ($1, $2, $3, $4, $5, $6, '', $7, $8)
		ON CONFLICT (checksum) DO UPDATE
		SET status = EXCLUDED.status, failure_reason = ''
		WHERE settlement_events.status = $9
	`, event.Checksum, event.EventID, event.GatewayRef, event.ReportedStatus,
		event.Payload, models.EventProcessing, event.OccurredAt, event.ReceivedAt,
		models.EventPending)
	if err != nil {
		// The dedup key must not outlive a failed insert, otherwise the
		// gateway's redelivery of an unrecorded event is swallowed.
		if redisErr == nil && won {
			r.releaseDedupKey(ctx, dedupKey)
		}
		return fmt.Errorf("failed to record settlement event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		if redisErr == nil && won {
			r.releaseDedupKey(ctx, dedupKey)
		}
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrDuplicateEvent
	}
	return nil
}

func (r *PaymentRepo) releaseDedupKey(ctx context.Context, dedupKey string) {
	if err := r.redisClient.Delete(ctx, dedupKey); err != nil {
		logger.Warn("Failed to release settlement dedup key", logger.Err(err))
	}
}

// MarkEventStatus records the processing status of an event. Marking
// PENDING reopens the event for redelivery, so the redis fast-path key
// is dropped alongside.
func (r *PaymentRepo) MarkEventStatus(ctx context.Context, checksum, status, failureReason string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE settlement_events
		SET status = $1, failure_reason = $2, processed_at = NOW()
		WHERE checksum = $3
	`, status, failureReason, checksum)
	if err != nil {
		return fmt.Errorf("failed to mark settlement event: %w", err)
	}

	if status == models.EventPending {
		dedupKey := fmt.Sprintf(constants.KeySettlementChecksum, checksum)
		if err := r.redisClient.Delete(ctx, dedupKey); err != nil {
			logger.Warn("Failed to clear settlement dedup key", logger.Err(err))
		}
	}
	return nil
}

// ListStaleProcessing returns events stuck in PROCESSING or PENDING
// since before cutoff, oldest first, for requeue by the reconciliation
// worker. PENDING rows are requeued events whose redelivery was lost.
func (r *PaymentRepo) ListStaleProcessing(ctx context.Context, cutoff time.Time, limit int) ([]*models.SettlementEvent, error) {
	var events []*models.SettlementEvent
	err := r.db.SelectContext(ctx, &events, `
		SELECT checksum, event_id, gateway_ref, reported_status, payload,
		       occurred_at, received_at
		FROM settlement_events
		WHERE status IN ($1, $2) AND received_at < $3
		ORDER BY received_at ASC
		LIMIT $4
	`, models.EventProcessing, models.EventPending, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale settlement events: %w", err)
	}
	return events, nil
}
