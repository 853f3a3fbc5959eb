// Package jobs implements the job status and cancellation endpoints.
package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/clipforge/render-broker/pkg/mapping"
	"github.com/clipforge/render-broker/pkg/middleware"
	"github.com/clipforge/render-broker/pkg/models"
	"github.com/clipforge/render-broker/pkg/storage"
)

// JobsHandler holds the dependencies for job-related handlers.
type JobsHandler struct {
	Store  storage.ApiStore
	Logger *slog.Logger
}

// NewJobsHandler creates a new JobsHandler.
func NewJobsHandler(store storage.ApiStore, logger *slog.Logger) *JobsHandler {
	return &JobsHandler{Store: store, Logger: logger}
}

// GetJobById returns the caller's view of a job. Jobs owned by other
// accounts read as not found so existence does not leak.
func (h *JobsHandler) GetJobById(w http.ResponseWriter, r *http.Request, jobId openapi_types.UUID) {
	job, ok := h.loadOwnedJob(w, r, jobId)
	if !ok {
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, mapping.ToApiJob(job))
}

// GetVideoLinks returns the video URL for a job, preferring the durable
// copy over the provider's expiring one.
func (h *JobsHandler) GetVideoLinks(w http.ResponseWriter, r *http.Request, jobId openapi_types.UUID) {
	job, ok := h.loadOwnedJob(w, r, jobId)
	if !ok {
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, mapping.ToApiVideoLinks(job))
}

// CancelJobById cancels a queued job and refunds its debit. The cancel is a
// conditional write racing the dispatcher's claim; once a worker holds the
// job the provider may already be rendering and cancellation is refused.
func (h *JobsHandler) CancelJobById(w http.ResponseWriter, r *http.Request, jobId openapi_types.UUID) {
	job, ok := h.loadOwnedJob(w, r, jobId)
	if !ok {
		return
	}

	if err := h.Store.CancelJob(r.Context(), job.ID, job.TokensDebited); err != nil {
		if errors.Is(err, storage.ErrJobNotCancellable) {
			http.Error(w, "Job can no longer be cancelled", http.StatusConflict)
			return
		}
		h.Logger.Error("failed to cancel job", "job_id", job.ID, "error", err)
		http.Error(w, fmt.Sprintf("Failed to cancel job: %v", err), http.StatusInternalServerError)
		return
	}

	if job.TokensDebited > 0 {
		if _, err := h.Store.Refund(r.Context(), job.AccountID, job.TokensDebited, job.ID); err != nil {
			h.Logger.Error("CRITICAL: cancelled job refund failed, tokens stranded",
				"job_id", job.ID, "account_id", job.AccountID, "error", err)
		}
	}

	job.Status = models.JobCancelled
	job.TokensRefunded = job.TokensDebited
	writeJSON(w, h.Logger, http.StatusOK, mapping.ToApiJob(job))
}

func (h *JobsHandler) loadOwnedJob(w http.ResponseWriter, r *http.Request, jobId openapi_types.UUID) (*models.RenderJob, bool) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return nil, false
	}

	job, err := h.Store.GetJob(r.Context(), jobId.String())
	if err != nil {
		if !errors.Is(err, storage.ErrJobNotFound) {
			h.Logger.Error("failed to load job", "job_id", jobId.String(), "error", err)
		}
		http.Error(w, "Job not found", http.StatusNotFound)
		return nil, false
	}
	if job.AccountID != identity.AccountID {
		http.Error(w, "Job not found", http.StatusNotFound)
		return nil, false
	}

	return job, true
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to write response", "error", err)
	}
}
