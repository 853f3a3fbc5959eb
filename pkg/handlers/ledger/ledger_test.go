package ledger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/render-broker/pkg/api"
	"github.com/clipforge/render-broker/pkg/auth"
	"github.com/clipforge/render-broker/pkg/middleware"
	"github.com/clipforge/render-broker/pkg/models"
	storage_mocks "github.com/clipforge/render-broker/pkg/storage/mocks"
)

const testServiceToken = "svc-secret"

func newTestHandler(store *storage_mocks.Storage) *LedgerHandler {
	return NewLedgerHandler(store, testServiceToken, slog.Default())
}

func authedRequest(method, target string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(method, target, nil)
	ctx := middleware.WithIdentity(req.Context(), &auth.Identity{AccountID: "acct-1"})
	return httptest.NewRecorder(), req.WithContext(ctx)
}

func TestGetBalance(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := newTestHandler(mockStore)

		mockStore.On("Balance", mock.Anything, "acct-1").Return(int64(42), nil)

		w, req := authedRequest(http.MethodGet, "/balance")
		h.GetBalance(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp api.Balance
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(42), resp.Balance)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		h := newTestHandler(new(storage_mocks.Storage))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/balance", nil)
		h.GetBalance(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestListLedgerEntries(t *testing.T) {
	t.Run("Defaults The Limit", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := newTestHandler(mockStore)

		mockStore.On("ListTransactions", mock.Anything, "acct-1", int32(20)).
			Return([]models.LedgerEntry{
				{TxID: "debit#job-1", AccountID: "acct-1", Type: models.TxDebit, Amount: -3, BalanceAfter: 7},
			}, nil)

		w, req := authedRequest(http.MethodGet, "/ledger")
		h.ListLedgerEntries(w, req, api.ListLedgerEntriesParams{})

		require.Equal(t, http.StatusOK, w.Code)
		var resp []api.LedgerEntry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, api.Debit, resp[0].Type)
		assert.Equal(t, int64(-3), resp[0].Amount)
	})

	t.Run("Honors Explicit Limit", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := newTestHandler(mockStore)

		mockStore.On("ListTransactions", mock.Anything, "acct-1", int32(5)).
			Return([]models.LedgerEntry{}, nil)

		limit := 5
		w, req := authedRequest(http.MethodGet, "/ledger?limit=5")
		h.ListLedgerEntries(w, req, api.ListLedgerEntriesParams{Limit: &limit})

		assert.Equal(t, http.StatusOK, w.Code)
		mockStore.AssertExpectations(t)
	})
}

func TestCreateCredit(t *testing.T) {
	creditBody := []byte(`{"account_id": "acct-1", "tokens": 100, "reference_id": "payment-77"}`)

	post := func(body []byte, token string) (*httptest.ResponseRecorder, *http.Request) {
		req := httptest.NewRequest(http.MethodPost, "/credits", bytes.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return httptest.NewRecorder(), req
	}

	t.Run("Success", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := newTestHandler(mockStore)

		mockStore.On("EnsureAccount", mock.Anything, "acct-1").
			Return(&models.Account{AccountID: "acct-1"}, nil)
		mockStore.On("Credit", mock.Anything, "acct-1", int64(100), "payment-77").
			Return(int64(100), nil)

		w, req := post(creditBody, testServiceToken)
		h.CreateCredit(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp api.Balance
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(100), resp.Balance)
		mockStore.AssertExpectations(t)
	})

	t.Run("Wrong Service Token", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := newTestHandler(mockStore)

		w, req := post(creditBody, "not-the-token")
		h.CreateCredit(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockStore.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing Token Amount", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := newTestHandler(mockStore)

		w, req := post([]byte(`{"account_id": "acct-1", "reference_id": "payment-77"}`), testServiceToken)
		h.CreateCredit(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Empty Configured Token Rejects Everything", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := NewLedgerHandler(mockStore, "", slog.Default())

		w, req := post(creditBody, "")
		h.CreateCredit(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
