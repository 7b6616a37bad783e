package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/novapay/paycore/internal/pkg/constants"
	"github.com/novapay/paycore/internal/pkg/logger"
	"github.com/novapay/paycore/internal/pkg/models"
)

// cachedOutcome is the redis representation of a finished admission,
// carrying the fingerprint so conflicts are detected without postgres.
type cachedOutcome struct {
	Fingerprint string                  `json:"fingerprint"`
	Outcome     *models.AdmissionResult `json:"outcome"`
}

// Reserve atomically claims the idempotency key for txID. The insert
// with a conditional upsert takes over expired keys in the same
// statement, so exactly one concurrent caller ever observes Created.
func (r *PaymentRepo) Reserve(ctx context.Context, key, fingerprint string, txID uuid.UUID) (*models.Reservation, error) {
	// Fast path: a completed admission cached in redis replays without
	// touching postgres.
	if cached, err := r.getCachedOutcome(ctx, key); err == nil && cached != nil {
		if cached.Fingerprint != fingerprint {
			return nil, models.ErrIdempotencyConflict
		}
		return &models.Reservation{
			Created: false,
			Record: models.IdempotencyRecord{
				Key:           key,
				Fingerprint:   cached.Fingerprint,
				TransactionID: cached.Outcome.TransactionID,
				Outcome:       cached.Outcome,
			},
		}, nil
	}

	now := time.Now().UTC()
	expiresAt := now.Add(time.Duration(r.cfg.Idempotency.TTLHours) * time.Hour)

	var claimedTxID uuid.UUID
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO idempotency_keys (
			idempotency_key, fingerprint, transaction_id, outcome, expires_at, created_at
		) VALUES ($1, $2, $3, NULL, $4, $5)
		ON CONFLICT (idempotency_key) DO UPDATE
		SET fingerprint = EXCLUDED.fingerprint,
		    transaction_id = EXCLUDED.transaction_id,
		    outcome = NULL,
		    expires_at = EXCLUDED.expires_at,
		    created_at = EXCLUDED.created_at
		WHERE idempotency_keys.expires_at < NOW()
		RETURNING transaction_id
	`, key, fingerprint, txID, expiresAt, now).Scan(&claimedTxID)

	if err == nil {
		return &models.Reservation{
			Created: true,
			Record: models.IdempotencyRecord{
				Key:           key,
				Fingerprint:   fingerprint,
				TransactionID: claimedTxID,
				ExpiresAt:     expiresAt,
				CreatedAt:     now,
			},
		}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}

	// Key already held by a live record: read it back and compare
	// fingerprints.
	record, err := r.getRecord(ctx, key)
	if err != nil {
		return nil, err
	}
	if record.Fingerprint != fingerprint {
		return nil, models.ErrIdempotencyConflict
	}

	return &models.Reservation{Created: false, Record: *record}, nil
}

// SaveOutcome snapshots the admission outcome durably and into the
// redis cache for the fast replay path.
func (r *PaymentRepo) SaveOutcome(ctx context.Context, key string, outcome *models.AdmissionResult) error {
	outcomeJSON, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE idempotency_keys
		SET outcome = $1
		WHERE idempotency_key = $2
	`, outcomeJSON, key)
	if err != nil {
		return fmt.Errorf("failed to save idempotency outcome: %w", err)
	}

	r.cacheOutcome(ctx, key, outcome)
	return nil
}

// Release gives the key back after a failed admission so the client's
// retry can re-admit. The ownership guard keeps a racing takeover or a
// recorded outcome from being wiped.
func (r *PaymentRepo) Release(ctx context.Context, key string, txID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM idempotency_keys
		WHERE idempotency_key = $1 AND transaction_id = $2 AND outcome IS NULL
	`, key, txID)
	if err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

func (r *PaymentRepo) getRecord(ctx context.Context, key string) (*models.IdempotencyRecord, error) {
	var row struct {
		Key           string    `db:"idempotency_key"`
		Fingerprint   string    `db:"fingerprint"`
		TransactionID uuid.UUID `db:"transaction_id"`
		Outcome       []byte    `db:"outcome"`
		ExpiresAt     time.Time `db:"expires_at"`
		CreatedAt     time.Time `db:"created_at"`
	}

	err := r.db.GetContext(ctx, &row, `
		SELECT idempotency_key, fingerprint, transaction_id, outcome, expires_at, created_at
		FROM idempotency_keys
		WHERE idempotency_key = $1
	`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency record: %w", err)
	}

	record := &models.IdempotencyRecord{
		Key:           row.Key,
		Fingerprint:   row.Fingerprint,
		TransactionID: row.TransactionID,
		ExpiresAt:     row.ExpiresAt,
		CreatedAt:     row.CreatedAt,
	}
	if len(row.Outcome) > 0 {
		var outcome models.AdmissionResult
		if err := json.Unmarshal(row.Outcome, &outcome); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored outcome: %w", err)
		}
		record.Outcome = &outcome
	}

	return record, nil
}

func (r *PaymentRepo) getCachedOutcome(ctx context.Context, key string) (*cachedOutcome, error) {
	raw, err := r.redisClient.Get(ctx, fmt.Sprintf(constants.KeyIdempotencyOutcome, key))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		// Cache miss on error: postgres remains the authority.
		return nil, err
	}

	var cached cachedOutcome
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, err
	}
	if cached.Outcome == nil {
		return nil, nil
	}
	return &cached, nil
}

func (r *PaymentRepo) cacheOutcome(ctx context.Context, key string, outcome *models.AdmissionResult) {
	record, err := r.getRecord(ctx, key)
	if err != nil {
		logger.Warn("Failed to load record for outcome cache", logger.Err(err))
		return
	}

	data, err := json.Marshal(cachedOutcome{Fingerprint: record.Fingerprint, Outcome: outcome})
	if err != nil {
		return
	}

	ttl := time.Duration(r.cfg.Idempotency.CacheTTLMins) * time.Minute
	if err := r.redisClient.Set(ctx, fmt.Sprintf(constants.KeyIdempotencyOutcome, key), data, ttl); err != nil {
		logger.Warn("Failed to cache idempotency outcome", logger.Err(err))
	}
}
