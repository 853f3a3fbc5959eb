package models

import (
	"encoding/json"
	"time"
)

// JobStatus defines the lifecycle states of a render job.
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
	JobCancelled  JobStatus = "cancelled"
)

// Terminal reports whether no further status transition is allowed.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed || s == JobCancelled
}

// TransactionType defines the kinds of ledger transactions.
type TransactionType string

const (
	TxPurchase TransactionType = "purchase"
	TxDebit    TransactionType = "debit"
	TxRefund   TransactionType = "refund"
)

// Account represents a billing account holding a prepaid token balance.
// The balance is only ever mutated through ledger transactions; the version
// field drives optimistic concurrency on every write.
type Account struct {
	AccountID string    `json:"account_id" dynamodbav:"account_id"`
	Balance   int64     `json:"balance" dynamodbav:"balance"`
	Version   int64     `json:"version" dynamodbav:"version"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// LedgerEntry is one immutable, append-only row of the token ledger.
// TxID is derived from the transaction type and the reference id, so a
// retried debit/refund/purchase for the same reference collides on the
// primary key instead of double-applying.
type LedgerEntry struct {
	TxID          string          `dynamodbav:"tx_id"`
	AccountID     string          `dynamodbav:"account_id"`
	Type          TransactionType `dynamodbav:"type"`
	Amount        int64           `dynamodbav:"amount"`
	BalanceBefore int64           `dynamodbav:"balance_before"`
	BalanceAfter  int64           `dynamodbav:"balance_after"`
	ReferenceID   string          `dynamodbav:"reference_id"`
	CreatedAt     time.Time       `dynamodbav:"created_at"`
	GSI1PK        string          `dynamodbav:"gsi1pk"`
}

// ReplayBalance reconstructs a balance by replaying ledger entries in
// created_at order on top of an initial balance. Used by reconciliation
// tooling to verify the conservation invariant.
func ReplayBalance(initial int64, entries []LedgerEntry) int64 {
	balance := initial
	for _, e := range entries {
		balance += e.Amount
	}
	return balance
}

// ApiKey is a stored API credential. Only the one-way hash of the secret is
// persisted; the raw secret is shown to the owner exactly once at creation.
type ApiKey struct {
	ID         string     `dynamodbav:"id"`
	AccountID  string     `dynamodbav:"account_id"`
	Name       string     `dynamodbav:"name"`
	SecretHash string     `dynamodbav:"secret_hash"`
	IsActive   bool       `dynamodbav:"is_active"`
	CreatedAt  time.Time  `dynamodbav:"created_at"`
	LastUsedAt *time.Time `dynamodbav:"last_used_at,omitempty"`
}

// RenderJob is one unit of submitted rendering work and its lifecycle.
// Spec is the opaque render payload, forwarded verbatim to the provider.
type RenderJob struct {
	ID              string          `dynamodbav:"id"`
	AccountID       string          `dynamodbav:"account_id"`
	ApiKeyID        string          `dynamodbav:"api_key_id,omitempty"`
	ExternalJobID   string          `dynamodbav:"external_job_id,omitempty"`
	Status          JobStatus       `dynamodbav:"status"`
	EstimatedTokens int64           `dynamodbav:"estimated_tokens"`
	TokensDebited   int64           `dynamodbav:"tokens_debited"`
	TokensRefunded  int64           `dynamodbav:"tokens_refunded"`
	Spec            json.RawMessage `dynamodbav:"spec"`
	AssetURL        string          `dynamodbav:"asset_url,omitempty"`
	ProviderURL     string          `dynamodbav:"provider_url,omitempty"`
	ErrorMessage    string          `dynamodbav:"error_message,omitempty"`
	RetryCount      int32           `dynamodbav:"retry_count"`
	CreatedAt       time.Time       `dynamodbav:"created_at"`
	UpdatedAt       time.Time       `dynamodbav:"updated_at"`
	CompletedAt     *time.Time      `dynamodbav:"completed_at,omitempty"`
}
