package storage

import (
	"context"
	"time"

	"github.com/clipforge/render-broker/pkg/models"
)

// JobReader defines the interface for reading render jobs.
type JobReader interface {
	// GetJob retrieves a render job by its ID.
	GetJob(ctx context.Context, jobID string) (*models.RenderJob, error)

	// GetJobByExternalID retrieves a render job by the provider-assigned id.
	GetJobByExternalID(ctx context.Context, externalID string) (*models.RenderJob, error)

	// GetStuckJobs retrieves jobs that have sat in the given status for
	// longer than maxAge.
	GetStuckJobs(ctx context.Context, status models.JobStatus, maxAge time.Duration) ([]models.RenderJob, error)
}

// JobManager defines the interface for creating jobs and driving their
// lifecycle. Every transition is a conditional write, so a stale or
// duplicate transition fails instead of overwriting a terminal state.
type JobManager interface {
	// CreateJob persists a new job in the queued state.
	CreateJob(ctx context.Context, job *models.RenderJob) (*models.RenderJob, error)

	// ClaimJob transitions queued -> processing. Exactly one caller can win
	// the claim; the rest get ErrJobNotClaimable.
	ClaimJob(ctx context.Context, jobID string) (*models.RenderJob, error)

	// SetJobSubmitted records the provider-assigned external job id.
	SetJobSubmitted(ctx context.Context, jobID, externalID string) error

	// CompleteJob transitions processing -> completed with the durable and
	// provider asset URLs.
	CompleteJob(ctx context.Context, jobID, assetURL, providerURL string) error

	// FailJob transitions queued|processing -> failed with an error message
	// and the refunded token amount.
	FailJob(ctx context.Context, jobID, errorMessage string, tokensRefunded int64) error

	// CancelJob transitions queued -> cancelled. Jobs that have started
	// processing get ErrJobNotCancellable.
	CancelJob(ctx context.Context, jobID string, tokensRefunded int64) error

	// BumpJobRetry increments the job's retry counter.
	BumpJobRetry(ctx context.Context, jobID string) error
}

// JobStore combines the reader and manager interfaces.
type JobStore interface {
	JobReader
	JobManager
}
