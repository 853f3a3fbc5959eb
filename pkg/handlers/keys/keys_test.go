package keys

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/render-broker/pkg/api"
	"github.com/clipforge/render-broker/pkg/auth"
	"github.com/clipforge/render-broker/pkg/middleware"
	"github.com/clipforge/render-broker/pkg/models"
	"github.com/clipforge/render-broker/pkg/storage"
	storage_mocks "github.com/clipforge/render-broker/pkg/storage/mocks"
)

func authedRequest(method, target string, body []byte) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := middleware.WithIdentity(req.Context(), &auth.Identity{AccountID: "acct-1"})
	return httptest.NewRecorder(), req.WithContext(ctx)
}

func TestCreateApiKey(t *testing.T) {
	t.Run("Secret Shown Exactly Once", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := NewKeysHandler(mockStore, slog.Default())

		keyID := uuid.New().String()
		var stored *models.ApiKey
		mockStore.On("CreateApiKey", mock.Anything, mock.AnythingOfType("*models.ApiKey")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*models.ApiKey) }).
			Return(&models.ApiKey{ID: keyID, AccountID: "acct-1", Name: "ci", IsActive: true, CreatedAt: time.Now()}, nil)

		w, req := authedRequest(http.MethodPost, "/keys", []byte(`{"name": "ci"}`))
		h.CreateApiKey(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp api.CreatedApiKey
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp.Secret, "rk_"))
		assert.Equal(t, "ci", resp.Name)

		// Only the hash ever reaches storage.
		require.NotNil(t, stored)
		assert.Equal(t, auth.HashSecret(resp.Secret), stored.SecretHash)
		assert.NotContains(t, stored.SecretHash, resp.Secret)
	})

	t.Run("Empty Name", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := NewKeysHandler(mockStore, slog.Default())

		w, req := authedRequest(http.MethodPost, "/keys", []byte(`{"name": ""}`))
		h.CreateApiKey(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockStore.AssertNotCalled(t, "CreateApiKey", mock.Anything, mock.Anything)
	})

	t.Run("Active Key Limit", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := NewKeysHandler(mockStore, slog.Default())

		mockStore.On("CreateApiKey", mock.Anything, mock.Anything).
			Return(nil, storage.ErrKeyLimitExceeded)

		w, req := authedRequest(http.MethodPost, "/keys", []byte(`{"name": "one-too-many"}`))
		h.CreateApiKey(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Duplicate Name", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := NewKeysHandler(mockStore, slog.Default())

		mockStore.On("CreateApiKey", mock.Anything, mock.Anything).
			Return(nil, storage.ErrDuplicateKeyName)

		w, req := authedRequest(http.MethodPost, "/keys", []byte(`{"name": "ci"}`))
		h.CreateApiKey(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestListApiKeys(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := NewKeysHandler(mockStore, slog.Default())

		mockStore.On("ListApiKeys", mock.Anything, "acct-1").Return([]models.ApiKey{
			{ID: uuid.New().String(), Name: "ci", IsActive: true},
			{ID: uuid.New().String(), Name: "old", IsActive: false},
		}, nil)

		w, req := authedRequest(http.MethodGet, "/keys", nil)
		h.ListApiKeys(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp []api.ApiKey
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "ci", resp[0].Name)
	})
}

func TestDeleteApiKey(t *testing.T) {
	keyID := uuid.MustParse("99999999-8888-7777-6666-555555555555")

	t.Run("Success", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := NewKeysHandler(mockStore, slog.Default())

		mockStore.On("DeactivateApiKey", mock.Anything, "acct-1", keyID.String()).Return(nil)

		w, req := authedRequest(http.MethodDelete, "/keys/"+keyID.String(), nil)
		h.DeleteApiKey(w, req, keyID)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Unknown Key", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := NewKeysHandler(mockStore, slog.Default())

		mockStore.On("DeactivateApiKey", mock.Anything, "acct-1", keyID.String()).
			Return(storage.ErrKeyNotFound)

		w, req := authedRequest(http.MethodDelete, "/keys/"+keyID.String(), nil)
		h.DeleteApiKey(w, req, keyID)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
