package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/clipforge/render-broker/pkg/models"
	"github.com/clipforge/render-broker/pkg/provider"
	"github.com/clipforge/render-broker/pkg/relocator"
	"github.com/clipforge/render-broker/pkg/storage"
)

// Settler applies terminal provider outcomes to jobs and the ledger. Both
// the polling loop and the webhook handler funnel through it, so duplicate
// notifications from either path collapse onto the same conditional writes.
type Settler struct {
	Store     storage.SettlementStore
	Relocator relocator.Relocator
	Logger    *slog.Logger

	// TransferAttempts bounds relocation retries before the job is failed
	// and refunded.
	TransferAttempts uint64
}

// NewSettler creates a Settler with default retry bounds.
func NewSettler(store storage.SettlementStore, rel relocator.Relocator, logger *slog.Logger) *Settler {
	return &Settler{
		Store:            store,
		Relocator:        rel,
		Logger:           logger,
		TransferAttempts: 3,
	}
}

// ApplyProviderEvent folds a provider state snapshot into the job record.
// Pending states and events for already-terminal jobs are no-ops.
func (s *Settler) ApplyProviderEvent(ctx context.Context, job *models.RenderJob, state *provider.RenderState) error {
	if job.Status.Terminal() {
		s.Logger.Info("ignoring provider event for terminal job",
			"job_id", job.ID, "status", job.Status, "provider_status", state.Status)
		return nil
	}

	switch state.Status {
	case provider.StatusDone:
		return s.settleSuccess(ctx, job, state.URL)
	case provider.StatusFailed:
		reason := state.Error
		if reason == "" {
			reason = "render failed at provider"
		}
		return s.SettleFailure(ctx, job, reason)
	default:
		return nil
	}
}

func (s *Settler) settleSuccess(ctx context.Context, job *models.RenderJob, providerURL string) error {
	destKey := fmt.Sprintf("renders/%s/%s.mp4", job.AccountID, job.ID)

	var assetURL string
	backoff := retry.WithMaxRetries(s.TransferAttempts, retry.NewExponential(2*time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		url, err := s.Relocator.Relocate(ctx, providerURL, destKey)
		if err != nil {
			s.Logger.Warn("asset transfer attempt failed", "job_id", job.ID, "error", err)
			return retry.RetryableError(err)
		}
		assetURL = url
		return nil
	})
	if err != nil {
		// The render succeeded but we could not secure the asset. The user
		// must not pay for output we cannot deliver.
		s.Logger.Error("asset transfer exhausted retries", "job_id", job.ID, "error", err)
		return s.SettleFailure(ctx, job, "failed to transfer rendered asset")
	}

	if err := s.Store.CompleteJob(ctx, job.ID, assetURL, providerURL); err != nil {
		if errors.Is(err, storage.ErrStaleTransition) {
			s.Logger.Info("job already settled", "job_id", job.ID)
			return nil
		}
		return fmt.Errorf("failed to complete job %s: %w", job.ID, err)
	}

	s.Logger.Info("job completed", "job_id", job.ID, "asset_url", assetURL)
	return nil
}

// SettleFailure marks the job failed and returns its debit. The conditional
// failed transition runs first and gates the refund: losing it to a
// concurrent completion means the tokens were earned and must not move.
// The refund is idempotent by job id, so redelivered failures stay single.
func (s *Settler) SettleFailure(ctx context.Context, job *models.RenderJob, reason string) error {
	if err := s.Store.FailJob(ctx, job.ID, reason, job.TokensDebited); err != nil {
		if errors.Is(err, storage.ErrStaleTransition) {
			s.Logger.Info("job already settled", "job_id", job.ID)
			return nil
		}
		return fmt.Errorf("failed to mark job %s failed: %w", job.ID, err)
	}

	if job.TokensDebited > 0 {
		if _, err := s.Store.Refund(ctx, job.AccountID, job.TokensDebited, job.ID); err != nil {
			s.Logger.Error("CRITICAL: refund for failed job did not apply, tokens stranded",
				"job_id", job.ID, "account_id", job.AccountID, "amount", job.TokensDebited, "error", err)
			return fmt.Errorf("failed to refund job %s: %w", job.ID, err)
		}
	}

	s.Logger.Info("job failed and refunded",
		"job_id", job.ID, "reason", reason, "tokens_refunded", job.TokensDebited)
	return nil
}
