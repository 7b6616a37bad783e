package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/novapay/paycore/internal/pkg/models"
	"github.com/novapay/paycore/services/payments/mocks"
)

func testConfig() *models.Config {
	return &models.Config{
		Settlement: models.SettlementConfig{
			HoldAttempts: 2,
			HoldDelayMs:  1,
		},
		Reconciler: models.ReconcilerConfig{
			IntervalSeconds: 30,
			DeadlineSeconds: 20,
			StaleSeconds:    60,
			MaxPasses:       3,
			BatchSize:       50,
		},
	}
}

func testIntent() *models.PaymentIntent {
	return &models.PaymentIntent{
		MerchantID:         "merchant-001",
		AmountMinor:        12999,
		Currency:           "USD",
		PaymentMethodToken: "tok_visa_4242",
		IdempotencyKey:     "idem-key-001",
	}
}

func newTestUC(ctrl *gomock.Controller) (*PaymentUC, *mocks.MockLedgerRepo, *mocks.MockIdempotencyRepo, *mocks.MockEventRepo, *mocks.MockGatewayClient, *mocks.MockPaymentGW) {
	ledger := mocks.NewMockLedgerRepo(ctrl)
	idem := mocks.NewMockIdempotencyRepo(ctrl)
	events := mocks.NewMockEventRepo(ctrl)
	gw := mocks.NewMockGatewayClient(ctrl)
	pgw := mocks.NewMockPaymentGW(ctrl)
	uc := NewPaymentUC(ledger, idem, events, gw, pgw, testConfig())
	return uc, ledger, idem, events, gw, pgw
}

func TestAdmit_Approved(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, idem, _, gw, pgw := newTestUC(ctrl)
	intent := testIntent()

	var txID uuid.UUID
	idem.EXPECT().Reserve(gomock.Any(), intent.IdempotencyKey, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, id uuid.UUID) (*models.Reservation, error) {
			txID = id
			return &models.Reservation{Created: true}, nil
		})
	ledger.EXPECT().CreateTransaction(gomock.Any(), gomock.Any(), intent).
		DoAndReturn(func(_ context.Context, id uuid.UUID, in *models.PaymentIntent) (*models.Transaction, error) {
			return &models.Transaction{
				ID:             id,
				MerchantID:     in.MerchantID,
				AmountMinor:    in.AmountMinor,
				Currency:       in.Currency,
				State:          models.StatePending,
				IdempotencyKey: in.IdempotencyKey,
			}, nil
		})
	gw.EXPECT().AuthorizeAndCapture(gomock.Any(), gomock.Any(), intent.PaymentMethodToken).
		Return(&models.GatewayResult{
			Outcome:   models.OutcomeApproved,
			Reference: "gw-ref-777",
			Code:      "1",
			Message:   "This transaction has been approved",
		}, nil)
	gomock.InOrder(
		ledger.EXPECT().Transition(gomock.Any(), gomock.Any(), transitionTo(models.StateAuthorized)).Return(nil),
		ledger.EXPECT().Transition(gomock.Any(), gomock.Any(), transitionTo(models.StateCaptured)).Return(nil),
	)
	pgw.EXPECT().PublishTransitionEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	idem.EXPECT().SaveOutcome(gomock.Any(), intent.IdempotencyKey, gomock.Any()).Return(nil)

	result, err := uc.Admit(context.Background(), intent)

	assert.NoError(t, err)
	assert.Equal(t, models.StateCaptured, result.Status)
	assert.Equal(t, "gw-ref-777", result.GatewayRef)
	assert.Equal(t, txID, result.TransactionID)
	assert.False(t, result.Replayed)
}

func TestAdmit_Declined(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, idem, _, gw, pgw := newTestUC(ctrl)
	intent := testIntent()

	idem.EXPECT().Reserve(gomock.Any(), intent.IdempotencyKey, gomock.Any(), gomock.Any()).
		Return(&models.Reservation{Created: true}, nil)
	ledger.EXPECT().CreateTransaction(gomock.Any(), gomock.Any(), intent).
		DoAndReturn(func(_ context.Context, id uuid.UUID, in *models.PaymentIntent) (*models.Transaction, error) {
			return &models.Transaction{ID: id, State: models.StatePending}, nil
		})
	gw.EXPECT().AuthorizeAndCapture(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.GatewayResult{
			Outcome: models.OutcomeDeclined,
			Code:    "2",
			Message: "insufficient funds",
		}, nil)
	ledger.EXPECT().Transition(gomock.Any(), gomock.Any(), transitionTo(models.StateDeclined)).Return(nil)
	pgw.EXPECT().PublishTransitionEvent(gomock.Any(), gomock.Any()).Return(nil)
	idem.EXPECT().SaveOutcome(gomock.Any(), intent.IdempotencyKey, gomock.Any()).Return(nil)

	result, err := uc.Admit(context.Background(), intent)

	assert.NoError(t, err)
	assert.Equal(t, models.StateDeclined, result.Status)
	assert.Equal(t, "insufficient funds", result.DeclineReason)
}

func TestAdmit_UnknownOutcomeParksAmbiguous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, idem, _, gw, pgw := newTestUC(ctrl)
	intent := testIntent()

	idem.EXPECT().Reserve(gomock.Any(), intent.IdempotencyKey, gomock.Any(), gomock.Any()).
		Return(&models.Reservation{Created: true}, nil)
	ledger.EXPECT().CreateTransaction(gomock.Any(), gomock.Any(), intent).
		DoAndReturn(func(_ context.Context, id uuid.UUID, in *models.PaymentIntent) (*models.Transaction, error) {
			return &models.Transaction{ID: id, State: models.StatePending}, nil
		})
	gw.EXPECT().AuthorizeAndCapture(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.GatewayResult{
			Outcome: models.OutcomeUnknown,
			Message: "gateway request failed: connection refused",
		}, nil)
	ledger.EXPECT().Transition(gomock.Any(), gomock.Any(), transitionTo(models.StateAmbiguous)).Return(nil)
	pgw.EXPECT().PublishTransitionEvent(gomock.Any(), gomock.Any()).Return(nil)
	idem.EXPECT().SaveOutcome(gomock.Any(), intent.IdempotencyKey, gomock.Any()).Return(nil)

	result, err := uc.Admit(context.Background(), intent)

	assert.NoError(t, err)
	assert.Equal(t, models.StateAmbiguous, result.Status)
	assert.Empty(t, result.DeclineReason)
}

func TestAdmit_ReplaysStoredOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, _, idem, _, _, _ := newTestUC(ctrl)
	intent := testIntent()
	originalTxID := uuid.New()

	idem.EXPECT().Reserve(gomock.Any(), intent.IdempotencyKey, gomock.Any(), gomock.Any()).
		Return(&models.Reservation{
			Created: false,
			Record: models.IdempotencyRecord{
				Key:           intent.IdempotencyKey,
				TransactionID: originalTxID,
				Outcome: &models.AdmissionResult{
					TransactionID: originalTxID,
					Status:        models.StateCaptured,
					GatewayRef:    "gw-ref-777",
				},
			},
		}, nil)

	result, err := uc.Admit(context.Background(), intent)

	assert.NoError(t, err)
	assert.True(t, result.Replayed)
	assert.Equal(t, originalTxID, result.TransactionID)
	assert.Equal(t, models.StateCaptured, result.Status)
}

func TestAdmit_ReplayWhileOriginalInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, idem, _, _, _ := newTestUC(ctrl)
	intent := testIntent()
	originalTxID := uuid.New()

	idem.EXPECT().Reserve(gomock.Any(), intent.IdempotencyKey, gomock.Any(), gomock.Any()).
		Return(&models.Reservation{
			Created: false,
			Record:  models.IdempotencyRecord{TransactionID: originalTxID},
		}, nil)
	ledger.EXPECT().GetTransaction(gomock.Any(), originalTxID).
		Return(&models.Transaction{ID: originalTxID, State: models.StatePending}, nil)

	result, err := uc.Admit(context.Background(), intent)

	assert.NoError(t, err)
	assert.True(t, result.Replayed)
	assert.Equal(t, models.StatePending, result.Status)
}

func TestAdmit_FingerprintConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, _, idem, _, _, _ := newTestUC(ctrl)
	intent := testIntent()

	idem.EXPECT().Reserve(gomock.Any(), intent.IdempotencyKey, gomock.Any(), gomock.Any()).
		Return(nil, models.ErrIdempotencyConflict)

	result, err := uc.Admit(context.Background(), intent)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrIdempotencyConflict)
}

func TestAdmit_LedgerFailureReleasesReservation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, idem, _, _, _ := newTestUC(ctrl)
	intent := testIntent()

	var txID uuid.UUID
	idem.EXPECT().Reserve(gomock.Any(), intent.IdempotencyKey, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, id uuid.UUID) (*models.Reservation, error) {
			txID = id
			return &models.Reservation{Created: true}, nil
		})
	ledger.EXPECT().CreateTransaction(gomock.Any(), gomock.Any(), intent).
		Return(nil, errors.New("connection reset"))
	// The key is handed back so a retry re-admits instead of replaying
	// a transaction that was never written.
	idem.EXPECT().Release(gomock.Any(), intent.IdempotencyKey, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, id uuid.UUID) error {
			assert.Equal(t, txID, id)
			return nil
		})

	result, err := uc.Admit(context.Background(), intent)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestAdmit_RejectsInvalidIntent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, _, _, _, _, _ := newTestUC(ctrl)

	cases := []struct {
		name   string
		mutate func(*models.PaymentIntent)
	}{
		{"missing idempotency key", func(i *models.PaymentIntent) { i.IdempotencyKey = "" }},
		{"missing merchant", func(i *models.PaymentIntent) { i.MerchantID = "" }},
		{"zero amount", func(i *models.PaymentIntent) { i.AmountMinor = 0 }},
		{"negative amount", func(i *models.PaymentIntent) { i.AmountMinor = -100 }},
		{"bad currency", func(i *models.PaymentIntent) { i.Currency = "US" }},
		{"missing token", func(i *models.PaymentIntent) { i.PaymentMethodToken = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			intent := testIntent()
			tc.mutate(intent)

			result, err := uc.Admit(context.Background(), intent)

			assert.Nil(t, result)
			assert.Error(t, err)
		})
	}
}

func TestRefund_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, _, _, gw, pgw := newTestUC(ctrl)
	txID := uuid.New()
	tx := &models.Transaction{ID: txID, State: models.StateCaptured, AmountMinor: 5000, GatewayRef: "gw-ref-1"}

	ledger.EXPECT().GetTransaction(gomock.Any(), txID).Return(tx, nil)
	gw.EXPECT().Refund(gomock.Any(), tx, int64(5000)).
		Return(&models.GatewayResult{Outcome: models.OutcomeApproved, Code: "1"}, nil)
	ledger.EXPECT().Transition(gomock.Any(), txID, transitionTo(models.StateRefunded)).Return(nil)
	pgw.EXPECT().PublishTransitionEvent(gomock.Any(), gomock.Any()).Return(nil)
	ledger.EXPECT().GetTransaction(gomock.Any(), txID).
		Return(&models.Transaction{ID: txID, State: models.StateRefunded}, nil)

	refunded, err := uc.Refund(context.Background(), txID, 5000, "customer_request")

	assert.NoError(t, err)
	assert.Equal(t, models.StateRefunded, refunded.State)
}

func TestRefund_RejectsSettledTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, _, _, _, _ := newTestUC(ctrl)
	txID := uuid.New()

	ledger.EXPECT().GetTransaction(gomock.Any(), txID).
		Return(&models.Transaction{ID: txID, State: models.StateSettled, AmountMinor: 5000}, nil)

	_, err := uc.Refund(context.Background(), txID, 5000, "customer_request")

	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestRefund_RejectsAmountAboveOriginal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, _, _, _, _ := newTestUC(ctrl)
	txID := uuid.New()

	ledger.EXPECT().GetTransaction(gomock.Any(), txID).
		Return(&models.Transaction{ID: txID, State: models.StateCaptured, AmountMinor: 5000}, nil)

	_, err := uc.Refund(context.Background(), txID, 6000, "customer_request")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestVoid_GatewayDeclines(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, _, _, gw, _ := newTestUC(ctrl)
	txID := uuid.New()
	tx := &models.Transaction{ID: txID, State: models.StateAuthorized, GatewayRef: "gw-ref-1"}

	ledger.EXPECT().GetTransaction(gomock.Any(), txID).Return(tx, nil)
	gw.EXPECT().Void(gomock.Any(), tx).
		Return(&models.GatewayResult{Outcome: models.OutcomeDeclined, Message: "already settled"}, nil)

	_, err := uc.Void(context.Background(), txID, "operator")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "void not approved")
}

func TestGetTransaction_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, _, _, _, _ := newTestUC(ctrl)
	txID := uuid.New()

	ledger.EXPECT().GetTransaction(gomock.Any(), txID).Return(nil, models.ErrTransactionNotFound)

	_, err := uc.GetTransaction(context.Background(), txID)

	assert.True(t, errors.Is(err, models.ErrTransactionNotFound))
}

// transitionTo matches any TransitionInput whose target state equals
// the expected one.
func transitionTo(to models.TransactionState) gomock.Matcher {
	return transitionMatcher{to: to}
}

type transitionMatcher struct {
	to models.TransactionState
}

func (m transitionMatcher) Matches(x interface{}) bool {
	input, ok := x.(models.TransitionInput)
	return ok && input.To == m.to
}

func (m transitionMatcher) String() string {
	return "transition to " + string(m.to)
}
