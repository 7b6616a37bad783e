package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/novapay/paycore/internal/pkg/logger"
	"github.com/novapay/paycore/internal/pkg/models"
)

// Reconciler periodically resolves transactions parked in AMBIGUOUS or
// stuck in PENDING by asking the gateway for the authoritative state,
// and requeues settlement events whose processing stalled.
type Reconciler struct {
	uc  *PaymentUC
	cfg models.ReconcilerConfig
}

// NewReconciler creates a new reconciliation worker
func NewReconciler(uc *PaymentUC) *Reconciler {
	return &Reconciler{
		uc:  uc,
		cfg: uc.cfg.Reconciler,
	}
}

// Run blocks, executing reconciliation passes until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	interval := time.Duration(r.cfg.IntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Reconciliation worker started",
		logger.Duration("interval", interval),
		logger.Int("max_passes", r.cfg.MaxPasses))

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reconciliation worker stopped")
			return
		case <-ticker.C:
			passCtx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.DeadlineSeconds)*time.Second)
			r.ReconcilePass(passCtx)
			r.RequeueStaleEvents(passCtx)
			cancel()
		}
	}
}

// ReconcilePass resolves one batch of stuck transactions.
func (r *Reconciler) ReconcilePass(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-time.Duration(r.cfg.StaleSeconds) * time.Second)
	stuck, err := r.uc.ledgerRepo.ListStuck(ctx,
		[]models.TransactionState{models.StateAmbiguous, models.StatePending},
		cutoff, r.cfg.BatchSize)
	if err != nil {
		logger.Error("Failed to list stuck transactions", logger.Err(err))
		return
	}
	if len(stuck) == 0 {
		return
	}

	logger.Info("Reconciling stuck transactions", logger.Int("count", len(stuck)))
	for _, tx := range stuck {
		if ctx.Err() != nil {
			return
		}
		if err := r.reconcileOne(ctx, tx); err != nil {
			logger.Error("Reconciliation failed for transaction",
				logger.String("transaction_id", tx.ID.String()),
				logger.Err(err))
		}
	}
}

// reconcileOne asks the gateway what actually happened to one
// transaction and moves the ledger to match. An inquiry that still
// cannot tell burns one pass; after the pass budget the transaction is
// escalated to manual review.
func (r *Reconciler) reconcileOne(ctx context.Context, tx *models.Transaction) error {
	result, err := r.uc.gateway.Status(ctx, tx.ID.String())
	if err != nil {
		result = &models.GatewayResult{Outcome: models.OutcomeUnknown, Message: err.Error()}
	}

	switch result.Outcome {
	case models.OutcomeApproved:
		target := reportedState(result)
		err := r.uc.advanceToReported(ctx, tx, target, causeReconciliation, result.Reference)
		var conflict *stateConflictError
		if errors.As(err, &conflict) {
			logger.Warn("Gateway reports state the ledger cannot reach",
				logger.String("transaction_id", tx.ID.String()),
				logger.String("ledger_state", string(conflict.current)),
				logger.String("gateway_state", string(conflict.reported)))
			return r.escalate(ctx, tx)
		}
		if err != nil {
			return err
		}
		logger.Info("Reconciled transaction from gateway state",
			logger.String("transaction_id", tx.ID.String()),
			logger.String("state", string(target)))
		return nil

	case models.OutcomeDeclined:
		err := r.uc.applyTransition(ctx, tx, models.TransitionInput{
			From:           tx.State,
			To:             models.StateDeclined,
			Cause:          causeReconciliation,
			GatewayCode:    result.Code,
			GatewayMessage: result.Message,
		})
		if errors.Is(err, models.ErrInvalidTransition) {
			// Another writer resolved it first.
			return nil
		}
		return err

	default:
		passes, err := r.uc.ledgerRepo.IncrementReconcilePasses(ctx, tx.ID)
		if err != nil {
			return err
		}
		if passes >= r.cfg.MaxPasses {
			return r.escalate(ctx, tx)
		}
		return nil
	}
}

// escalate takes a transaction out of automatic reconciliation and
// notifies the operator queue.
func (r *Reconciler) escalate(ctx context.Context, tx *models.Transaction) error {
	if err := r.uc.ledgerRepo.MarkNeedsReview(ctx, tx.ID); err != nil {
		return err
	}
	logger.Warn("Transaction escalated for manual review",
		logger.String("transaction_id", tx.ID.String()),
		logger.String("state", string(tx.State)),
		logger.Int("reconcile_passes", tx.ReconcilePasses))

	if err := r.uc.PaymentGW.PublishReviewRequired(ctx, tx); err != nil {
		logger.Error("Failed to publish review notification",
			logger.String("transaction_id", tx.ID.String()),
			logger.Err(err))
	}
	return nil
}

// RequeueStaleEvents republishes settlement events whose processing
// stalled, typically because a consumer died mid-event.
func (r *Reconciler) RequeueStaleEvents(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-time.Duration(r.cfg.StaleSeconds) * time.Second)
	events, err := r.uc.eventRepo.ListStaleProcessing(ctx, cutoff, r.cfg.BatchSize)
	if err != nil {
		logger.Error("Failed to list stale settlement events", logger.Err(err))
		return
	}

	for _, event := range events {
		if err := r.uc.eventRepo.MarkEventStatus(ctx, event.Checksum, models.EventPending, "requeued"); err != nil {
			logger.Error("Failed to park settlement event for requeue",
				logger.String("checksum", event.Checksum), logger.Err(err))
			continue
		}
		if err := r.uc.PaymentGW.RepublishSettlementEvent(ctx, event); err != nil {
			logger.Error("Failed to republish settlement event",
				logger.String("checksum", event.Checksum), logger.Err(err))
		}
	}
}

// reportedState extracts the gateway's authoritative state from a
// status inquiry. An approved result with no state detail means the
// charge at least captured.
func reportedState(result *models.GatewayResult) models.TransactionState {
	switch models.TransactionState(result.State) {
	case models.StateAuthorized:
		return models.StateAuthorized
	case models.StateSettled:
		return models.StateSettled
	case models.StateCaptured:
		return models.StateCaptured
	default:
		return models.StateCaptured
	}
}
