package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/novapay/paycore/internal/pkg/logger"
	"github.com/novapay/paycore/internal/pkg/models"
)

// captureLadder is the forward progression a settlement fact may have
// to walk in steps when the reported state is more than one edge away.
var captureLadder = []models.TransactionState{
	models.StatePending,
	models.StateAuthorized,
	models.StateCaptured,
	models.StateSettled,
}

// ApplySettlementEvent consumes an asynchronous settlement fact.
// Redelivery of the same event is a no-op; an event for an unknown
// gateway reference is held briefly and then parked as UNMATCHED.
func (uc *PaymentUC) ApplySettlementEvent(ctx context.Context, event *models.SettlementEvent) error {
	event.ComputeChecksum()
	if event.ReceivedAt.IsZero() {
		event.ReceivedAt = time.Now().UTC()
	}

	if err := uc.eventRepo.RecordEvent(ctx, event); err != nil {
		if errors.Is(err, models.ErrDuplicateEvent) {
			logger.Debug("Ignoring duplicate settlement event",
				logger.String("event_id", event.EventID),
				logger.String("checksum", event.Checksum))
			return nil
		}
		return err
	}

	tx, err := uc.lookupByGatewayRef(ctx, event.GatewayRef)
	if err != nil {
		if errors.Is(err, models.ErrTransactionNotFound) {
			logger.Warn("Settlement event matches no transaction",
				logger.String("event_id", event.EventID),
				logger.String("gateway_ref", event.GatewayRef))
			return uc.eventRepo.MarkEventStatus(ctx, event.Checksum, models.EventUnmatched,
				"no transaction for gateway reference")
		}
		return err
	}

	if err := uc.advanceToReported(ctx, tx, event.ReportedStatus, causeSettlement, event.GatewayRef); err != nil {
		var conflict *stateConflictError
		if errors.As(err, &conflict) {
			logger.Warn("Settlement event conflicts with ledger state",
				logger.String("event_id", event.EventID),
				logger.String("transaction_id", tx.ID.String()),
				logger.String("ledger_state", string(conflict.current)),
				logger.String("reported_state", string(conflict.reported)))
			return uc.eventRepo.MarkEventStatus(ctx, event.Checksum, models.EventUnmatched, conflict.Error())
		}
		// Transient failure: leave the row in PROCESSING so the requeue
		// worker retries it.
		return err
	}

	return uc.eventRepo.MarkEventStatus(ctx, event.Checksum, models.EventCompleted, "")
}

// lookupByGatewayRef retries the match a few times before giving up.
// Settlement facts can race the ledger write that records the gateway
// reference.
func (uc *PaymentUC) lookupByGatewayRef(ctx context.Context, gatewayRef string) (*models.Transaction, error) {
	attempts := uc.cfg.Settlement.HoldAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := time.Duration(uc.cfg.Settlement.HoldDelayMs) * time.Millisecond

	var tx *models.Transaction
	var err error
	for i := 0; i < attempts; i++ {
		tx, err = uc.ledgerRepo.GetTransactionByGatewayRef(ctx, gatewayRef)
		if err == nil || !errors.Is(err, models.ErrTransactionNotFound) {
			return tx, err
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, err
}

// stateConflictError means the ledger can never legally reach the
// reported state from where it is now.
type stateConflictError struct {
	current  models.TransactionState
	reported models.TransactionState
}

func (e *stateConflictError) Error() string {
	return fmt.Sprintf("ledger state %s cannot reach reported state %s", e.current, e.reported)
}

// advanceToReported walks the ledger to the externally reported state,
// one valid edge at a time. Already being there is a success; a state
// the ledger cannot reach is a conflict.
func (uc *PaymentUC) advanceToReported(ctx context.Context, tx *models.Transaction, reported models.TransactionState, cause, gatewayRef string) error {
	if tx.State == reported {
		return nil
	}

	path := transitionPath(tx.State, reported)
	if path == nil {
		// A stale report the ledger already moved past is consistent,
		// not conflicting. CAPTURED arriving after SETTLED is a no-op;
		// SETTLED against DECLINED is a real conflict.
		if alreadyConsistent(tx, reported) {
			return nil
		}
		return &stateConflictError{current: tx.State, reported: reported}
	}

	for _, next := range path {
		err := uc.applyTransition(ctx, tx, models.TransitionInput{
			From:       tx.State,
			To:         next,
			Cause:      cause,
			GatewayRef: gatewayRef,
		})
		if err == nil {
			continue
		}
		if !errors.Is(err, models.ErrInvalidTransition) {
			return err
		}

		// A concurrent writer moved the row. Reload and re-judge from
		// the fresh state.
		fresh, ferr := uc.ledgerRepo.GetTransaction(ctx, tx.ID)
		if ferr != nil {
			return ferr
		}
		*tx = *fresh
		return uc.advanceToReported(ctx, tx, reported, cause, gatewayRef)
	}
	return nil
}

// alreadyConsistent reports whether the ledger already absorbed the
// reported state: it sits further along the capture ladder, or its
// history shows the state was passed through on the way to where it is.
func alreadyConsistent(tx *models.Transaction, reported models.TransactionState) bool {
	curIdx, repIdx := ladderIndex(tx.State), ladderIndex(reported)
	if curIdx >= 0 && repIdx >= 0 && curIdx > repIdx {
		return true
	}
	for _, change := range tx.History {
		if change.ToState == reported {
			return true
		}
	}
	return false
}

// transitionPath returns the edges to walk from one state to another,
// or nil when the target is unreachable. AMBIGUOUS resolves onto the
// capture ladder at the reported rung.
func transitionPath(from, to models.TransactionState) []models.TransactionState {
	if models.CanTransition(from, to) {
		return []models.TransactionState{to}
	}

	if from == models.StateAmbiguous {
		// No direct edge: only SETTLED, reached through CAPTURED.
		if to == models.StateSettled {
			return []models.TransactionState{models.StateCaptured, models.StateSettled}
		}
		return nil
	}

	fromIdx, toIdx := ladderIndex(from), ladderIndex(to)
	if fromIdx < 0 || toIdx < 0 || toIdx <= fromIdx {
		return nil
	}
	return captureLadder[fromIdx+1 : toIdx+1]
}

func ladderIndex(s models.TransactionState) int {
	for i, rung := range captureLadder {
		if rung == s {
			return i
		}
	}
	return -1
}
