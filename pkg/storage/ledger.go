package storage

import (
	"context"

	"github.com/clipforge/render-broker/pkg/models"
)

// Ledger defines the interface for the token ledger. All mutations are
// atomic against the account balance and append exactly one immutable
// ledger entry, keyed by the reference id for idempotency.
type Ledger interface {
	// Debit withdraws amount tokens, failing with ErrInsufficientTokens if
	// the balance does not cover it. Returns the new balance.
	Debit(ctx context.Context, accountID string, amount int64, referenceID string) (int64, error)

	// Credit adds purchased tokens. Idempotent by referenceID: a duplicate
	// call returns the balance recorded by the first one.
	Credit(ctx context.Context, accountID string, amount int64, referenceID string) (int64, error)

	// Refund returns previously debited tokens. Same idempotency contract
	// as Credit; settlement retries must never double-refund.
	Refund(ctx context.Context, accountID string, amount int64, referenceID string) (int64, error)

	// Balance returns the current token balance.
	Balance(ctx context.Context, accountID string) (int64, error)

	// ListTransactions returns the most recent ledger entries for an account.
	ListTransactions(ctx context.Context, accountID string, limit int32) ([]models.LedgerEntry, error)
}
