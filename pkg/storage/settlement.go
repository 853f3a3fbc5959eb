package storage

import "context"

// SettlementStore defines the privileged subset used by the dispatcher to
// claim, track and settle jobs. It is the only consumer of Refund besides
// the gateway's compensating path.
type SettlementStore interface {
	JobReader
	JobManager

	// Refund returns the debited tokens for a failed or timed-out job.
	// Idempotent by referenceID.
	Refund(ctx context.Context, accountID string, amount int64, referenceID string) (int64, error)
}
