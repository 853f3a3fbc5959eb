// Package webhook receives provider-originated render notifications. It is
// a faster path to the same settlement the polling loop performs, so a
// webhook and a poll observing the same outcome must converge on one state.
package webhook

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/clipforge/render-broker/pkg/api"
	"github.com/clipforge/render-broker/pkg/dispatcher"
	"github.com/clipforge/render-broker/pkg/provider"
	"github.com/clipforge/render-broker/pkg/storage"
)

// WebhookHandler holds the dependencies for the provider callback endpoint.
type WebhookHandler struct {
	Store   storage.JobReader
	Settler *dispatcher.Settler
	Logger  *slog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(store storage.JobReader, settler *dispatcher.Settler, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{Store: store, Settler: settler, Logger: logger}
}

// RenderWebhook applies a provider notification to the referenced job.
// Unknown renders and duplicate deliveries are acknowledged without effect;
// a non-2xx answer would only make the provider retry them forever.
func (h *WebhookHandler) RenderWebhook(w http.ResponseWriter, r *http.Request) {
	var event api.RenderWebhookJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid webhook payload", http.StatusBadRequest)
		return
	}
	if event.Id == "" {
		http.Error(w, "Webhook payload missing render id", http.StatusBadRequest)
		return
	}

	job, err := h.Store.GetJobByExternalID(r.Context(), event.Id)
	if err != nil {
		if errors.Is(err, storage.ErrJobNotFound) {
			h.Logger.Warn("webhook for unknown render", "external_job_id", event.Id)
			w.WriteHeader(http.StatusOK)
			return
		}
		h.Logger.Error("failed to resolve webhook job", "external_job_id", event.Id, "error", err)
		http.Error(w, "Failed to process webhook", http.StatusInternalServerError)
		return
	}

	state := &provider.RenderState{
		ExternalID: event.Id,
		Status:     provider.MapStatus(event.Status),
	}
	if event.Url != nil {
		state.URL = *event.Url
	}
	if event.Error != nil {
		state.Error = *event.Error
	}

	if err := h.Settler.ApplyProviderEvent(r.Context(), job, state); err != nil {
		h.Logger.Error("failed to settle webhook event", "job_id", job.ID, "error", err)
		http.Error(w, "Failed to process webhook", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
