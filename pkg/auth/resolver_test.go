package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/render-broker/pkg/models"
	"github.com/clipforge/render-broker/pkg/storage"
	storage_mocks "github.com/clipforge/render-broker/pkg/storage/mocks"
)

func newResolver(store *storage_mocks.Storage, jwtSecret string) *TokenResolver {
	return NewTokenResolver(store, store, []byte(jwtSecret), slog.Default())
}

func TestResolve_ApiKey(t *testing.T) {
	t.Run("Active Key", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		r := newResolver(mockStore, "jwt-secret")

		secret := "rk_0123456789abcdef"
		key := &models.ApiKey{ID: "key-1", AccountID: "acct-1", IsActive: true}

		mockStore.On("GetApiKeyByHash", mock.Anything, HashSecret(secret)).Return(key, nil)
		mockStore.On("TouchApiKey", mock.Anything, "key-1", mock.AnythingOfType("time.Time")).Return(nil)
		mockStore.On("EnsureAccount", mock.Anything, "acct-1").Return(&models.Account{AccountID: "acct-1"}, nil)

		identity, err := r.Resolve(context.Background(), secret)
		require.NoError(t, err)
		assert.Equal(t, "acct-1", identity.AccountID)
		assert.Equal(t, "key-1", identity.KeyID)
		mockStore.AssertExpectations(t)
	})

	t.Run("Inactive Key", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		r := newResolver(mockStore, "jwt-secret")

		key := &models.ApiKey{ID: "key-1", AccountID: "acct-1", IsActive: false}
		mockStore.On("GetApiKeyByHash", mock.Anything, mock.Anything).Return(key, nil)

		_, err := r.Resolve(context.Background(), "rk_whatever")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("Unknown Key", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		r := newResolver(mockStore, "jwt-secret")

		mockStore.On("GetApiKeyByHash", mock.Anything, mock.Anything).Return(nil, storage.ErrKeyNotFound)

		_, err := r.Resolve(context.Background(), "rk_unknown")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("Touch Failure Does Not Reject", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		r := newResolver(mockStore, "jwt-secret")

		key := &models.ApiKey{ID: "key-1", AccountID: "acct-1", IsActive: true}
		mockStore.On("GetApiKeyByHash", mock.Anything, mock.Anything).Return(key, nil)
		mockStore.On("TouchApiKey", mock.Anything, "key-1", mock.AnythingOfType("time.Time")).Return(assert.AnError)
		mockStore.On("EnsureAccount", mock.Anything, "acct-1").Return(&models.Account{AccountID: "acct-1"}, nil)

		identity, err := r.Resolve(context.Background(), "rk_whatever")
		require.NoError(t, err)
		assert.Equal(t, "acct-1", identity.AccountID)
	})
}

func TestResolve_JWT(t *testing.T) {
	signToken := func(t *testing.T, secret, userID string) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": userID,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(secret))
		require.NoError(t, err)
		return signed
	}

	t.Run("Valid Session Token", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		r := newResolver(mockStore, "jwt-secret")

		mockStore.On("EnsureAccount", mock.Anything, "user-7").Return(&models.Account{AccountID: "user-7"}, nil)

		identity, err := r.Resolve(context.Background(), signToken(t, "jwt-secret", "user-7"))
		require.NoError(t, err)
		assert.Equal(t, "user-7", identity.AccountID)
		assert.Empty(t, identity.KeyID)
		mockStore.AssertNotCalled(t, "GetApiKeyByHash", mock.Anything, mock.Anything)
	})

	t.Run("Wrong Signature Falls Through To Key Lookup", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		r := newResolver(mockStore, "jwt-secret")

		mockStore.On("GetApiKeyByHash", mock.Anything, mock.Anything).Return(nil, storage.ErrKeyNotFound)

		_, err := r.Resolve(context.Background(), signToken(t, "other-secret", "user-7"))
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("Empty Credential", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		r := newResolver(mockStore, "jwt-secret")

		_, err := r.Resolve(context.Background(), "")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
