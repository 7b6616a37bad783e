package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/novapay/paycore/internal/pkg/models"
)

func testSettlementEvent(gatewayRef string, reported models.TransactionState) *models.SettlementEvent {
	return &models.SettlementEvent{
		EventID:        "evt-001",
		GatewayRef:     gatewayRef,
		ReportedStatus: reported,
		Payload:        []byte(`{"event_id":"evt-001"}`),
		OccurredAt:     time.Now().UTC(),
	}
}

func TestApplySettlementEvent_SettlesCapturedTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, _, events, _, pgw := newTestUC(ctrl)
	txID := uuid.New()
	event := testSettlementEvent("gw-ref-1", models.StateSettled)
	// Populate Checksum before it is captured by the expectation below;
	// ComputeChecksum is idempotent, so the call inside
	// ApplySettlementEvent leaves the value unchanged.
	event.ComputeChecksum()

	events.EXPECT().RecordEvent(gomock.Any(), event).Return(nil)
	ledger.EXPECT().GetTransactionByGatewayRef(gomock.Any(), "gw-ref-1").
		Return(&models.Transaction{ID: txID, State: models.StateCaptured, GatewayRef: "gw-ref-1"}, nil)
	ledger.EXPECT().Transition(gomock.Any(), txID, transitionTo(models.StateSettled)).Return(nil)
	pgw.EXPECT().PublishTransitionEvent(gomock.Any(), gomock.Any()).Return(nil)
	events.EXPECT().MarkEventStatus(gomock.Any(), event.Checksum, models.EventCompleted, "").
		DoAndReturn(func(_ context.Context, checksum, _, _ string) error {
			assert.NotEmpty(t, checksum)
			return nil
		})

	err := uc.ApplySettlementEvent(context.Background(), event)

	assert.NoError(t, err)
}

func TestApplySettlementEvent_ResolvesAmbiguousThroughCapture(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, _, events, _, pgw := newTestUC(ctrl)
	txID := uuid.New()
	event := testSettlementEvent("gw-ref-2", models.StateSettled)

	events.EXPECT().RecordEvent(gomock.Any(), event).Return(nil)
	ledger.EXPECT().GetTransactionByGatewayRef(gomock.Any(), "gw-ref-2").
		Return(&models.Transaction{ID: txID, State: models.StateAmbiguous, GatewayRef: "gw-ref-2"}, nil)
	gomock.InOrder(
		ledger.EXPECT().Transition(gomock.Any(), txID, transitionTo(models.StateCaptured)).Return(nil),
		ledger.EXPECT().Transition(gomock.Any(), txID, transitionTo(models.StateSettled)).Return(nil),
	)
	pgw.EXPECT().PublishTransitionEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	events.EXPECT().MarkEventStatus(gomock.Any(), gomock.Any(), models.EventCompleted, "").Return(nil)

	err := uc.ApplySettlementEvent(context.Background(), event)

	assert.NoError(t, err)
}

func TestApplySettlementEvent_DuplicateIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, _, _, events, _, _ := newTestUC(ctrl)
	event := testSettlementEvent("gw-ref-1", models.StateSettled)

	events.EXPECT().RecordEvent(gomock.Any(), event).Return(models.ErrDuplicateEvent)

	err := uc.ApplySettlementEvent(context.Background(), event)

	assert.NoError(t, err)
}

func TestApplySettlementEvent_AlreadySettledCompletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, _, events, _, _ := newTestUC(ctrl)
	txID := uuid.New()
	event := testSettlementEvent("gw-ref-1", models.StateSettled)

	events.EXPECT().RecordEvent(gomock.Any(), event).Return(nil)
	ledger.EXPECT().GetTransactionByGatewayRef(gomock.Any(), "gw-ref-1").
		Return(&models.Transaction{ID: txID, State: models.StateSettled}, nil)
	events.EXPECT().MarkEventStatus(gomock.Any(), gomock.Any(), models.EventCompleted, "").Return(nil)

	err := uc.ApplySettlementEvent(context.Background(), event)

	assert.NoError(t, err)
}

func TestApplySettlementEvent_UnknownReferenceParksUnmatched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, _, events, _, _ := newTestUC(ctrl)
	event := testSettlementEvent("gw-ref-missing", models.StateSettled)

	events.EXPECT().RecordEvent(gomock.Any(), event).Return(nil)
	// One lookup per hold attempt before giving up.
	ledger.EXPECT().GetTransactionByGatewayRef(gomock.Any(), "gw-ref-missing").
		Return(nil, models.ErrTransactionNotFound).Times(2)
	events.EXPECT().MarkEventStatus(gomock.Any(), gomock.Any(), models.EventUnmatched, gomock.Any()).Return(nil)

	err := uc.ApplySettlementEvent(context.Background(), event)

	assert.NoError(t, err)
}

func TestApplySettlementEvent_ConflictingStateParksUnmatched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, _, events, _, _ := newTestUC(ctrl)
	txID := uuid.New()
	event := testSettlementEvent("gw-ref-3", models.StateSettled)

	events.EXPECT().RecordEvent(gomock.Any(), event).Return(nil)
	ledger.EXPECT().GetTransactionByGatewayRef(gomock.Any(), "gw-ref-3").
		Return(&models.Transaction{ID: txID, State: models.StateDeclined}, nil)
	events.EXPECT().MarkEventStatus(gomock.Any(), gomock.Any(), models.EventUnmatched, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, reason string) error {
			assert.Contains(t, reason, "cannot reach")
			return nil
		})

	err := uc.ApplySettlementEvent(context.Background(), event)

	assert.NoError(t, err)
}

func TestApplySettlementEvent_StaleReportBehindLedgerCompletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, _, events, _, _ := newTestUC(ctrl)
	txID := uuid.New()
	event := testSettlementEvent("gw-ref-5", models.StateCaptured)

	events.EXPECT().RecordEvent(gomock.Any(), event).Return(nil)
	// An out-of-order capture report after the row settled is already
	// consistent, not a conflict. No transition happens.
	ledger.EXPECT().GetTransactionByGatewayRef(gomock.Any(), "gw-ref-5").
		Return(&models.Transaction{ID: txID, State: models.StateSettled, GatewayRef: "gw-ref-5"}, nil)
	events.EXPECT().MarkEventStatus(gomock.Any(), gomock.Any(), models.EventCompleted, "").Return(nil)

	err := uc.ApplySettlementEvent(context.Background(), event)

	assert.NoError(t, err)
}

func TestApplySettlementEvent_StaleReportInHistoryCompletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, _, events, _, _ := newTestUC(ctrl)
	txID := uuid.New()
	event := testSettlementEvent("gw-ref-6", models.StateCaptured)

	events.EXPECT().RecordEvent(gomock.Any(), event).Return(nil)
	// The row moved off the capture ladder, but its history shows the
	// reported state was passed through on the way.
	ledger.EXPECT().GetTransactionByGatewayRef(gomock.Any(), "gw-ref-6").
		Return(&models.Transaction{
			ID:    txID,
			State: models.StateRefunded,
			History: []models.StateChange{
				{FromState: models.StatePending, ToState: models.StateAuthorized},
				{FromState: models.StateAuthorized, ToState: models.StateCaptured},
				{FromState: models.StateCaptured, ToState: models.StateRefunded},
			},
		}, nil)
	events.EXPECT().MarkEventStatus(gomock.Any(), gomock.Any(), models.EventCompleted, "").Return(nil)

	err := uc.ApplySettlementEvent(context.Background(), event)

	assert.NoError(t, err)
}

func TestApplySettlementEvent_ConcurrentWriterWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, ledger, _, events, _, _ := newTestUC(ctrl)
	txID := uuid.New()
	event := testSettlementEvent("gw-ref-4", models.StateSettled)

	events.EXPECT().RecordEvent(gomock.Any(), event).Return(nil)
	ledger.EXPECT().GetTransactionByGatewayRef(gomock.Any(), "gw-ref-4").
		Return(&models.Transaction{ID: txID, State: models.StateCaptured}, nil)
	// The conditional write loses to a concurrent settlement of the
	// same transaction; reloading shows the target already reached.
	ledger.EXPECT().Transition(gomock.Any(), txID, transitionTo(models.StateSettled)).
		Return(models.ErrInvalidTransition)
	ledger.EXPECT().GetTransaction(gomock.Any(), txID).
		Return(&models.Transaction{ID: txID, State: models.StateSettled}, nil)
	events.EXPECT().MarkEventStatus(gomock.Any(), gomock.Any(), models.EventCompleted, "").Return(nil)

	err := uc.ApplySettlementEvent(context.Background(), event)

	assert.NoError(t, err)
}

func TestTransitionPath(t *testing.T) {
	cases := []struct {
		name string
		from models.TransactionState
		to   models.TransactionState
		want []models.TransactionState
	}{
		{"direct edge", models.StateCaptured, models.StateSettled, []models.TransactionState{models.StateSettled}},
		{"pending to settled", models.StatePending, models.StateSettled, []models.TransactionState{models.StateAuthorized, models.StateCaptured, models.StateSettled}},
		{"ambiguous to captured", models.StateAmbiguous, models.StateCaptured, []models.TransactionState{models.StateCaptured}},
		{"ambiguous to settled", models.StateAmbiguous, models.StateSettled, []models.TransactionState{models.StateCaptured, models.StateSettled}},
		{"declined unreachable", models.StateDeclined, models.StateSettled, nil},
		{"backwards unreachable", models.StateSettled, models.StateCaptured, nil},
		{"refunded from pending unreachable", models.StatePending, models.StateRefunded, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, transitionPath(tc.from, tc.to))
		})
	}
}
