package handlers

import (
	"log/slog"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/clipforge/render-broker/pkg/api"
	"github.com/clipforge/render-broker/pkg/dispatcher"
	"github.com/clipforge/render-broker/pkg/handlers/jobs"
	"github.com/clipforge/render-broker/pkg/handlers/keys"
	"github.com/clipforge/render-broker/pkg/handlers/ledger"
	"github.com/clipforge/render-broker/pkg/handlers/render"
	"github.com/clipforge/render-broker/pkg/handlers/webhook"
	"github.com/clipforge/render-broker/pkg/ratelimit"
	"github.com/clipforge/render-broker/pkg/scheduler"
	"github.com/clipforge/render-broker/pkg/storage"
)

// ApiHandler implements the generated server interface by delegating to the
// per-resource handlers.
type ApiHandler struct {
	Render  *render.RenderHandler
	Jobs    *jobs.JobsHandler
	Keys    *keys.KeysHandler
	Ledger  *ledger.LedgerHandler
	Webhook *webhook.WebhookHandler
}

// NewApiHandler wires up the per-resource handlers with shared dependencies.
func NewApiHandler(store storage.Storage, sched scheduler.Scheduler, limiter ratelimit.Limiter, settler *dispatcher.Settler, serviceToken string, logger *slog.Logger) *ApiHandler {
	return &ApiHandler{
		Render:  render.NewRenderHandler(store, sched, limiter, logger),
		Jobs:    jobs.NewJobsHandler(store, logger),
		Keys:    keys.NewKeysHandler(store, logger),
		Ledger:  ledger.NewLedgerHandler(store, serviceToken, logger),
		Webhook: webhook.NewWebhookHandler(store, settler, logger),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

func (h *ApiHandler) CreateRender(w http.ResponseWriter, r *http.Request) {
	h.Render.CreateRender(w, r)
}

func (h *ApiHandler) GetJobById(w http.ResponseWriter, r *http.Request, jobId openapi_types.UUID) {
	h.Jobs.GetJobById(w, r, jobId)
}

func (h *ApiHandler) CancelJobById(w http.ResponseWriter, r *http.Request, jobId openapi_types.UUID) {
	h.Jobs.CancelJobById(w, r, jobId)
}

func (h *ApiHandler) GetVideoLinks(w http.ResponseWriter, r *http.Request, jobId openapi_types.UUID) {
	h.Jobs.GetVideoLinks(w, r, jobId)
}

func (h *ApiHandler) RenderWebhook(w http.ResponseWriter, r *http.Request) {
	h.Webhook.RenderWebhook(w, r)
}

func (h *ApiHandler) CreateApiKey(w http.ResponseWriter, r *http.Request) {
	h.Keys.CreateApiKey(w, r)
}

func (h *ApiHandler) ListApiKeys(w http.ResponseWriter, r *http.Request) {
	h.Keys.ListApiKeys(w, r)
}

func (h *ApiHandler) DeleteApiKey(w http.ResponseWriter, r *http.Request, keyId openapi_types.UUID) {
	h.Keys.DeleteApiKey(w, r, keyId)
}

func (h *ApiHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	h.Ledger.GetBalance(w, r)
}

func (h *ApiHandler) ListLedgerEntries(w http.ResponseWriter, r *http.Request, params api.ListLedgerEntriesParams) {
	h.Ledger.ListLedgerEntries(w, r, params)
}

func (h *ApiHandler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	h.Ledger.CreateCredit(w, r)
}
