// Package keys implements API key management. Secrets are returned exactly
// once, at creation; only their hash is stored.
package keys

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/clipforge/render-broker/pkg/api"
	"github.com/clipforge/render-broker/pkg/auth"
	"github.com/clipforge/render-broker/pkg/mapping"
	"github.com/clipforge/render-broker/pkg/middleware"
	"github.com/clipforge/render-broker/pkg/models"
	"github.com/clipforge/render-broker/pkg/storage"
)

const maxKeyNameLength = 50

// KeysHandler holds the dependencies for API key handlers.
type KeysHandler struct {
	Store  storage.ApiKeyStore
	Logger *slog.Logger
}

// NewKeysHandler creates a new KeysHandler.
func NewKeysHandler(store storage.ApiKeyStore, logger *slog.Logger) *KeysHandler {
	return &KeysHandler{Store: store, Logger: logger}
}

// CreateApiKey mints a new key for the caller's account.
func (h *KeysHandler) CreateApiKey(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	var req api.NewApiKey
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Name == "" || len(req.Name) > maxKeyNameLength {
		http.Error(w, fmt.Sprintf("Key name must be 1-%d characters", maxKeyNameLength), http.StatusBadRequest)
		return
	}

	secret, err := auth.GenerateSecret()
	if err != nil {
		h.Logger.Error("failed to generate key secret", "error", err)
		http.Error(w, "Failed to create key", http.StatusInternalServerError)
		return
	}

	created, err := h.Store.CreateApiKey(r.Context(), &models.ApiKey{
		AccountID:  identity.AccountID,
		Name:       req.Name,
		SecretHash: auth.HashSecret(secret),
	})
	if err != nil {
		if errors.Is(err, storage.ErrKeyLimitExceeded) || errors.Is(err, storage.ErrDuplicateKeyName) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		h.Logger.Error("failed to create api key", "account_id", identity.AccountID, "error", err)
		http.Error(w, "Failed to create key", http.StatusInternalServerError)
		return
	}

	resp := api.CreatedApiKey{
		Id:        mapping.ToApiApiKey(created).Id,
		Name:      created.Name,
		Secret:    secret,
		CreatedAt: created.CreatedAt,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Error("failed to write response", "error", err)
	}
}

// ListApiKeys returns the caller's keys, active and deactivated.
func (h *KeysHandler) ListApiKeys(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	domainKeys, err := h.Store.ListApiKeys(r.Context(), identity.AccountID)
	if err != nil {
		h.Logger.Error("failed to list api keys", "account_id", identity.AccountID, "error", err)
		http.Error(w, "Failed to list keys", http.StatusInternalServerError)
		return
	}

	apiKeys := make([]*api.ApiKey, len(domainKeys))
	for i, key := range domainKeys {
		apiKeys[i] = mapping.ToApiApiKey(&key)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiKeys); err != nil {
		h.Logger.Error("failed to write response", "error", err)
	}
}

// DeleteApiKey deactivates a key. Deactivation is soft so historical jobs
// keep a resolvable key id.
func (h *KeysHandler) DeleteApiKey(w http.ResponseWriter, r *http.Request, keyId openapi_types.UUID) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := h.Store.DeactivateApiKey(r.Context(), identity.AccountID, keyId.String()); err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			http.Error(w, "Key not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("failed to deactivate api key", "key_id", keyId.String(), "error", err)
		http.Error(w, "Failed to deactivate key", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
