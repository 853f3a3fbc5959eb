// Package render implements the job submission gateway. The ordering is
// deliberate: everything that can reject a request for free happens before
// the ledger debit, and every failure after the debit compensates with a
// refund keyed to the job id.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/clipforge/render-broker/pkg/api"
	"github.com/clipforge/render-broker/pkg/middleware"
	"github.com/clipforge/render-broker/pkg/models"
	"github.com/clipforge/render-broker/pkg/ratelimit"
	"github.com/clipforge/render-broker/pkg/renderspec"
	"github.com/clipforge/render-broker/pkg/scheduler"
	"github.com/clipforge/render-broker/pkg/storage"
)

// RenderHandler holds the dependencies for the render submission endpoint.
type RenderHandler struct {
	Store     storage.ApiStore
	Scheduler scheduler.Scheduler
	Limiter   ratelimit.Limiter
	Logger    *slog.Logger
}

// NewRenderHandler creates a new RenderHandler.
func NewRenderHandler(store storage.ApiStore, sched scheduler.Scheduler, limiter ratelimit.Limiter, logger *slog.Logger) *RenderHandler {
	return &RenderHandler{Store: store, Scheduler: sched, Limiter: limiter, Logger: logger}
}

// CreateRender validates, prices, debits and enqueues a render job.
func (h *RenderHandler) CreateRender(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	if !h.Limiter.Allow(r.Context(), identity.AccountID) {
		http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, renderspec.MaxSpecBytes))
	if err != nil {
		http.Error(w, "Request body too large", http.StatusBadRequest)
		return
	}

	spec, err := renderspec.Parse(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid render spec: %v", err), http.StatusBadRequest)
		return
	}
	estimate := spec.EstimateTokens()

	// The job id doubles as the ledger reference, so it must exist before
	// the debit.
	jobID := uuid.New().String()

	if _, err := h.Store.Debit(r.Context(), identity.AccountID, estimate, jobID); err != nil {
		if errors.Is(err, storage.ErrInsufficientTokens) {
			http.Error(w, "Insufficient tokens", http.StatusPaymentRequired)
			return
		}
		h.Logger.Error("failed to debit tokens", "account_id", identity.AccountID, "error", err)
		http.Error(w, "Failed to submit render", http.StatusInternalServerError)
		return
	}

	job := &models.RenderJob{
		ID:              jobID,
		AccountID:       identity.AccountID,
		ApiKeyID:        identity.KeyID,
		EstimatedTokens: estimate,
		TokensDebited:   estimate,
		Spec:            body,
	}
	if _, err := h.Store.CreateJob(r.Context(), job); err != nil {
		h.Logger.Error("failed to persist job, refunding debit", "job_id", jobID, "error", err)
		h.compensate(r, identity.AccountID, estimate, jobID)
		http.Error(w, "Failed to submit render", http.StatusInternalServerError)
		return
	}

	if err := h.Scheduler.ScheduleJob(r.Context(), jobID, 0); err != nil {
		h.Logger.Error("failed to enqueue job, refunding debit", "job_id", jobID, "error", err)
		h.compensate(r, identity.AccountID, estimate, jobID)
		if failErr := h.Store.FailJob(r.Context(), jobID, "failed to enqueue job", estimate); failErr != nil {
			h.Logger.Error("failed to mark unenqueued job failed", "job_id", jobID, "error", failErr)
		}
		http.Error(w, "Failed to submit render", http.StatusInternalServerError)
		return
	}

	resp := api.RenderResponse{
		JobId:           uuid.MustParse(jobID),
		EstimatedTokens: estimate,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Error("failed to write response", "error", err)
	}
}

// compensate refunds a debit whose job never became processable. The refund
// shares the job id reference, so a retried compensation stays a no-op.
func (h *RenderHandler) compensate(r *http.Request, accountID string, amount int64, jobID string) {
	if _, err := h.Store.Refund(r.Context(), accountID, amount, jobID); err != nil {
		h.Logger.Error("CRITICAL: compensating refund failed, tokens stranded",
			"account_id", accountID, "job_id", jobID, "amount", amount, "error", err)
	}
}
