// Package dispatcher consumes queued render jobs, submits them to the
// provider and tracks them to a terminal state. The queue delivers at least
// once; the conditional queued -> processing claim makes processing
// effectively once.
package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/sethvargo/go-retry"

	"github.com/clipforge/render-broker/pkg/models"
	"github.com/clipforge/render-broker/pkg/provider"
	"github.com/clipforge/render-broker/pkg/scheduler"
	"github.com/clipforge/render-broker/pkg/storage"
)

// SQSConsumerAPI captures the subset of the SQS client used by the worker.
type SQSConsumerAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Config holds the dispatcher's tuning knobs.
type Config struct {
	// Concurrency caps the number of jobs tracked at once.
	Concurrency int
	// PollInterval is the delay between provider status polls.
	PollInterval time.Duration
	// JobTimeout bounds a job's total lifetime, measured from creation.
	// Jobs past it are failed and refunded.
	JobTimeout time.Duration
	// SubmitAttempts bounds transient-error retries when submitting to the
	// provider.
	SubmitAttempts uint64
}

// DefaultConfig returns production tuning.
func DefaultConfig() Config {
	return Config{
		Concurrency:    8,
		PollInterval:   10 * time.Second,
		JobTimeout:     30 * time.Minute,
		SubmitAttempts: 3,
	}
}

// Dispatcher pulls job ids from the queue and drives each one through
// claim, submit, track and settle.
type Dispatcher struct {
	Store    storage.SettlementStore
	Provider provider.RenderProvider
	Settler  *Settler
	Queue    SQSConsumerAPI
	QueueURL string
	Config   Config
	Logger   *slog.Logger
}

// maxConsecutivePollFailures is how many polls in a row may fail before the
// job is handed back to the queue for redelivery.
const maxConsecutivePollFailures = 10

// NewDispatcher creates a Dispatcher.
func NewDispatcher(store storage.SettlementStore, prov provider.RenderProvider, settler *Settler, queue SQSConsumerAPI, queueURL string, cfg Config, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		Store:    store,
		Provider: prov,
		Settler:  settler,
		Queue:    queue,
		QueueURL: queueURL,
		Config:   cfg,
		Logger:   logger,
	}
}

// Run consumes the queue until ctx is cancelled, then waits for in-flight
// jobs to finish.
func (d *Dispatcher) Run(ctx context.Context) error {
	sem := make(chan struct{}, d.Config.Concurrency)
	var wg sync.WaitGroup

	d.Logger.Info("dispatcher started", "queue_url", d.QueueURL, "concurrency", d.Config.Concurrency)

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			d.Logger.Info("dispatcher stopped")
			return ctx.Err()
		default:
		}

		out, err := d.Queue.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(d.QueueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			d.Logger.Error("failed to receive messages", "error", err)
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range out.Messages {
			msg := msg
			sem <- struct{}{}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				d.handleMessage(ctx, msg.Body, msg.ReceiptHandle)
			}()
		}
	}
}

// handleMessage processes one queue delivery. The message is deleted on
// success and on malformed input; processing errors leave it for the
// visibility timeout to redeliver.
func (d *Dispatcher) handleMessage(ctx context.Context, body, receiptHandle *string) {
	var msg scheduler.JobMessage
	if body == nil || json.Unmarshal([]byte(*body), &msg) != nil || msg.JobID == "" {
		d.Logger.Error("dropping malformed queue message")
		d.deleteMessage(ctx, receiptHandle)
		return
	}

	if err := d.ProcessJob(ctx, msg.JobID); err != nil {
		d.Logger.Error("job processing failed, leaving for redelivery", "job_id", msg.JobID, "error", err)
		return
	}

	d.deleteMessage(ctx, receiptHandle)
}

func (d *Dispatcher) deleteMessage(ctx context.Context, receiptHandle *string) {
	_, err := d.Queue.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(d.QueueURL),
		ReceiptHandle: receiptHandle,
	})
	if err != nil {
		d.Logger.Warn("failed to delete queue message", "error", err)
	}
}

// ProcessJob drives one job to a terminal state. Redeliveries of jobs
// another worker holds are dropped unless the holder died after recording
// the external id, in which case tracking is re-adopted.
func (d *Dispatcher) ProcessJob(ctx context.Context, jobID string) error {
	job, err := d.Store.ClaimJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, storage.ErrJobNotClaimable) {
			return d.readopt(ctx, jobID)
		}
		if errors.Is(err, storage.ErrJobNotFound) {
			d.Logger.Error("queued job no longer exists", "job_id", jobID)
			return nil
		}
		return fmt.Errorf("failed to claim job %s: %w", jobID, err)
	}

	externalID, err := d.submit(ctx, job)
	if err != nil {
		return d.Settler.SettleFailure(ctx, job, fmt.Sprintf("provider submission failed: %v", err))
	}

	// Without the recorded external id a crashed worker leaves the job
	// unadoptable and webhook lookups miss, so the write is worth retrying.
	backoff := retry.WithMaxRetries(d.Config.SubmitAttempts, retry.NewExponential(200*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := d.Store.SetJobSubmitted(ctx, job.ID, externalID); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		d.Logger.Error("failed to record external job id", "job_id", job.ID, "external_job_id", externalID, "error", err)
	}
	job.ExternalJobID = externalID

	return d.track(ctx, job)
}

// readopt resumes tracking of a processing job whose previous worker died
// after submission. Jobs without an external id cannot be resubmitted
// (the provider may already be rendering); they wait out the job lifetime
// and are then failed and refunded.
func (d *Dispatcher) readopt(ctx context.Context, jobID string) error {
	job, err := d.Store.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, storage.ErrJobNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load job %s: %w", jobID, err)
	}

	if job.Status != models.JobProcessing {
		d.Logger.Info("dropping duplicate delivery", "job_id", jobID, "status", job.Status)
		return nil
	}

	if job.ExternalJobID == "" {
		if time.Since(job.CreatedAt) > d.Config.JobTimeout {
			d.Logger.Warn("claimed job never reached the provider, abandoning", "job_id", jobID)
			return d.Settler.SettleFailure(ctx, job, "job lost before provider submission")
		}
		d.Logger.Info("claimed job has no external id yet, leaving for the reconciler", "job_id", jobID)
		return nil
	}

	d.Logger.Info("re-adopting orphaned job", "job_id", jobID, "external_job_id", job.ExternalJobID)
	return d.track(ctx, job)
}

// submit sends the job to the provider, retrying transient failures.
// Rejections are permanent and abort immediately.
func (d *Dispatcher) submit(ctx context.Context, job *models.RenderJob) (string, error) {
	var externalID string
	backoff := retry.WithMaxRetries(d.Config.SubmitAttempts, retry.NewExponential(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		id, err := d.Provider.Submit(ctx, job.Spec)
		if err != nil {
			if errors.Is(err, provider.ErrRejected) {
				return err
			}
			d.Logger.Warn("transient submit failure", "job_id", job.ID, "error", err)
			if bumpErr := d.Store.BumpJobRetry(ctx, job.ID); bumpErr != nil {
				d.Logger.Warn("failed to bump retry counter", "job_id", job.ID, "error", bumpErr)
			}
			return retry.RetryableError(err)
		}
		externalID = id
		return nil
	})
	if err != nil {
		return "", err
	}
	return externalID, nil
}

// track polls the provider until the job settles, the deadline passes or
// polling becomes persistently impossible.
func (d *Dispatcher) track(ctx context.Context, job *models.RenderJob) error {
	deadline := job.CreatedAt.Add(d.Config.JobTimeout)
	failures := 0

	ticker := time.NewTicker(d.Config.PollInterval)
	defer ticker.Stop()

	for {
		if time.Now().After(deadline) {
			d.Logger.Warn("job exceeded lifetime, abandoning render", "job_id", job.ID)
			return d.Settler.SettleFailure(ctx, job, "render timed out")
		}

		state, err := d.Provider.Poll(ctx, job.ExternalJobID)
		if err != nil {
			failures++
			d.Logger.Warn("poll failed", "job_id", job.ID, "consecutive_failures", failures, "error", err)
			if failures >= maxConsecutivePollFailures {
				return fmt.Errorf("polling job %s failed %d times: %w", job.ID, failures, err)
			}
		} else {
			failures = 0
			if state.Status != provider.StatusPending {
				return d.Settler.ApplyProviderEvent(ctx, job, state)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
