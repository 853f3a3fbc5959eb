package storage

import (
	"context"

	"github.com/clipforge/render-broker/pkg/models"
)

// AccountStore defines the interface for managing billing accounts.
type AccountStore interface {
	// GetAccount retrieves an account by its ID.
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)

	// EnsureAccount creates the account with a zero balance if it does not
	// exist yet, and returns the current row either way.
	EnsureAccount(ctx context.Context, accountID string) (*models.Account, error)
}
