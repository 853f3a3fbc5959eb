package storage

import (
	"context"
	"time"

	"github.com/clipforge/render-broker/pkg/models"
)

// ApiKeyStore defines the interface for managing API credentials.
type ApiKeyStore interface {
	// CreateApiKey persists a new key. Fails with ErrKeyLimitExceeded when
	// the account already holds the maximum number of active keys, and with
	// ErrDuplicateKeyName when the name is taken.
	CreateApiKey(ctx context.Context, key *models.ApiKey) (*models.ApiKey, error)

	// GetApiKeyByHash resolves a key by the hash of its secret.
	GetApiKeyByHash(ctx context.Context, secretHash string) (*models.ApiKey, error)

	// ListApiKeys retrieves all keys belonging to an account.
	ListApiKeys(ctx context.Context, accountID string) ([]models.ApiKey, error)

	// DeactivateApiKey soft-deletes a key. The key must belong to accountID.
	DeactivateApiKey(ctx context.Context, accountID, keyID string) error

	// TouchApiKey updates last_used_at after a successful authentication.
	TouchApiKey(ctx context.Context, keyID string, usedAt time.Time) error
}
