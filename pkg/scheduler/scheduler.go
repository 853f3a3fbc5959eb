package scheduler

import (
	"context"
	"time"
)

// Scheduler defines the interface for a component that enqueues a render
// job for asynchronous processing by the dispatcher.
type Scheduler interface {
	// ScheduleJob enqueues a job id, optionally delayed.
	ScheduleJob(ctx context.Context, jobID string, delay time.Duration) error
}

// JobMessage is the queue payload. Only the id travels on the queue; the
// dispatcher re-reads the authoritative job row before doing anything.
type JobMessage struct {
	JobID string `json:"job_id"`
}
