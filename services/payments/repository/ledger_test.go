package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v8"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novapay/paycore/internal/pkg/database"
	"github.com/novapay/paycore/internal/pkg/models"
)

func newTestRepo(t *testing.T) (*PaymentRepo, sqlmock.Sqlmock, redismock.ClientMock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	redisDB, redisMock := redismock.NewClientMock()

	cfg := &models.Config{
		Idempotency: models.IdempotencyConfig{TTLHours: 24, CacheTTLMins: 30},
	}
	repo := NewPaymentRepo(cfg, sqlx.NewDb(db, "pgx"), database.NewRedisClientFrom(redisDB))
	return repo, mock, redisMock
}

func transactionColumns() []string {
	return []string{
		"id", "intent_id", "merchant_id", "amount_minor", "currency", "state",
		"gateway_ref", "idempotency_key", "last_error", "retry_count",
		"reconcile_passes", "needs_review", "created_at", "updated_at",
	}
}

func transactionRow(txID uuid.UUID, state models.TransactionState) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(transactionColumns()).
		AddRow(txID, uuid.New(), "merchant-001", int64(12999), "USD", state,
			"gw-ref-1", "idem-key-001", "", 0, 0, false, now, now)
}

func TestCreateTransaction(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	txID := uuid.New()
	intent := &models.PaymentIntent{
		ID:                 uuid.New(),
		MerchantID:         "merchant-001",
		AmountMinor:        12999,
		Currency:           "USD",
		PaymentMethodToken: "tok_visa_4242",
		IdempotencyKey:     "idem-key-001",
		CreatedAt:          time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payment_intents").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transactions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transaction_events").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	trx, err := repo.CreateTransaction(context.Background(), txID, intent)

	assert.NoError(t, err)
	assert.Equal(t, txID, trx.ID)
	assert.Equal(t, models.StatePending, trx.State)
	assert.Len(t, trx.History, 1)
	assert.Equal(t, "admitted", trx.History[0].Cause)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransition_Success(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	txID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE transactions").
		WithArgs(models.StateAuthorized, "gw-ref-1", "", txID, models.StatePending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transaction_events").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Transition(context.Background(), txID, models.TransitionInput{
		From:       models.StatePending,
		To:         models.StateAuthorized,
		Cause:      "gateway_approved",
		GatewayRef: "gw-ref-1",
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransition_RejectsIllegalEdge(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	err := repo.Transition(context.Background(), uuid.New(), models.TransitionInput{
		From: models.StateSettled,
		To:   models.StatePending,
	})

	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestTransition_LostRace(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	txID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE transactions").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT state FROM transactions").
		WithArgs(txID).
		WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow(models.StateCaptured))
	mock.ExpectRollback()

	err := repo.Transition(context.Background(), txID, models.TransitionInput{
		From: models.StatePending,
		To:   models.StateAuthorized,
	})

	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransition_NotFound(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	txID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE transactions").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT state FROM transactions").
		WithArgs(txID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Transition(context.Background(), txID, models.TransitionInput{
		From: models.StatePending,
		To:   models.StateAuthorized,
	})

	assert.ErrorIs(t, err, models.ErrTransactionNotFound)
}

func TestGetTransaction_WithHistory(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	txID := uuid.New()
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM transactions").
		WithArgs(txID.String()).
		WillReturnRows(transactionRow(txID, models.StateCaptured))
	mock.ExpectQuery("SELECT (.+) FROM transaction_events").
		WithArgs(txID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "transaction_id", "from_state", "to_state", "cause",
			"gateway_code", "gateway_message", "created_at",
		}).
			AddRow(uuid.New(), txID, "", models.StatePending, "admitted", "", "", now).
			AddRow(uuid.New(), txID, models.StatePending, models.StateAuthorized, "gateway_approved", "1", "", now).
			AddRow(uuid.New(), txID, models.StateAuthorized, models.StateCaptured, "auto_capture", "", "", now))

	trx, err := repo.GetTransaction(context.Background(), txID)

	assert.NoError(t, err)
	assert.Equal(t, models.StateCaptured, trx.State)
	assert.Len(t, trx.History, 3)
	assert.Equal(t, models.StateCaptured, trx.History[2].ToState)
}

func TestGetTransaction_NotFound(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	txID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM transactions").
		WithArgs(txID.String()).
		WillReturnError(sql.ErrNoRows)

	trx, err := repo.GetTransaction(context.Background(), txID)

	assert.Nil(t, trx)
	assert.ErrorIs(t, err, models.ErrTransactionNotFound)
}

func TestListStuck(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	txID := uuid.New()
	cutoff := time.Now().Add(-time.Minute)

	mock.ExpectQuery("SELECT (.+) FROM transactions WHERE state IN").
		WillReturnRows(transactionRow(txID, models.StateAmbiguous))

	stuck, err := repo.ListStuck(context.Background(),
		[]models.TransactionState{models.StateAmbiguous, models.StatePending}, cutoff, 50)

	assert.NoError(t, err)
	require.Len(t, stuck, 1)
	assert.Equal(t, txID, stuck[0].ID)
}

func TestIncrementReconcilePasses(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	txID := uuid.New()

	mock.ExpectQuery("UPDATE transactions").
		WithArgs(txID).
		WillReturnRows(sqlmock.NewRows([]string{"reconcile_passes"}).AddRow(3))

	passes, err := repo.IncrementReconcilePasses(context.Background(), txID)

	assert.NoError(t, err)
	assert.Equal(t, 3, passes)
}

func TestMarkNeedsReview_NotFound(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	txID := uuid.New()

	mock.ExpectExec("UPDATE transactions").
		WithArgs(txID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkNeedsReview(context.Background(), txID)

	assert.ErrorIs(t, err, models.ErrTransactionNotFound)
}
