// Package ledger implements the balance and transaction history endpoints,
// plus the internal credit endpoint the payment service calls.
package ledger

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/clipforge/render-broker/pkg/api"
	"github.com/clipforge/render-broker/pkg/mapping"
	"github.com/clipforge/render-broker/pkg/middleware"
	"github.com/clipforge/render-broker/pkg/storage"
)

const defaultLedgerLimit = 20

// LedgerHandler holds the dependencies for ledger-related handlers.
type LedgerHandler struct {
	Store  storage.ApiStore
	Logger *slog.Logger
	// ServiceToken authorizes the payment collaborator to post credits.
	ServiceToken string
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(store storage.ApiStore, serviceToken string, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{Store: store, ServiceToken: serviceToken, Logger: logger}
}

// GetBalance returns the caller's token balance.
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	balance, err := h.Store.Balance(r.Context(), identity.AccountID)
	if err != nil {
		h.Logger.Error("failed to read balance", "account_id", identity.AccountID, "error", err)
		http.Error(w, "Failed to retrieve balance", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, api.Balance{AccountId: identity.AccountID, Balance: balance})
}

// ListLedgerEntries returns the caller's most recent ledger entries.
func (h *LedgerHandler) ListLedgerEntries(w http.ResponseWriter, r *http.Request, params api.ListLedgerEntriesParams) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	limit := int32(defaultLedgerLimit)
	if params.Limit != nil && *params.Limit > 0 {
		limit = int32(*params.Limit)
	}

	domainEntries, err := h.Store.ListTransactions(r.Context(), identity.AccountID, limit)
	if err != nil {
		h.Logger.Error("failed to list ledger entries", "account_id", identity.AccountID, "error", err)
		http.Error(w, "Failed to retrieve ledger entries", http.StatusInternalServerError)
		return
	}

	apiEntries := make([]*api.LedgerEntry, len(domainEntries))
	for i, entry := range domainEntries {
		apiEntries[i] = mapping.ToApiLedgerEntry(&entry)
	}

	h.writeJSON(w, http.StatusOK, apiEntries)
}

// CreateCredit applies a purchased token credit. Called by the payment
// service with its own token, never by end users; idempotent by the payment
// reference id.
func (h *LedgerHandler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeService(r) {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	var req api.CreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.AccountId == "" || req.ReferenceId == "" || req.Tokens <= 0 {
		http.Error(w, "account_id, reference_id and a positive token amount are required", http.StatusBadRequest)
		return
	}

	if _, err := h.Store.EnsureAccount(r.Context(), req.AccountId); err != nil {
		h.Logger.Error("failed to ensure account", "account_id", req.AccountId, "error", err)
		http.Error(w, "Failed to apply credit", http.StatusInternalServerError)
		return
	}

	balance, err := h.Store.Credit(r.Context(), req.AccountId, req.Tokens, req.ReferenceId)
	if err != nil {
		h.Logger.Error("failed to apply credit", "account_id", req.AccountId, "reference_id", req.ReferenceId, "error", err)
		http.Error(w, "Failed to apply credit", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, api.Balance{AccountId: req.AccountId, Balance: balance})
}

func (h *LedgerHandler) authorizeService(r *http.Request) bool {
	if h.ServiceToken == "" {
		return false
	}
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.ServiceToken)) == 1
}

func (h *LedgerHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("failed to write response", "error", err)
	}
}
