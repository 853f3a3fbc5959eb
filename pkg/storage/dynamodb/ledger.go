package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sethvargo/go-retry"

	"github.com/clipforge/render-broker/pkg/models"
	"github.com/clipforge/render-broker/pkg/storage"
)

const (
	// ledgerPartition is the fixed partition key of the global listing GSI.
	ledgerPartition = "LEDGER_ENTRIES"

	accountLedgerGSI = "account_id-created_at-index"

	// maxLedgerRetries bounds the optimistic-concurrency retry loop. Version
	// conflicts under contention are expected; anything that survives this
	// many fresh reads is reported to the caller.
	maxLedgerRetries = 5
)

var errVersionConflict = errors.New("account version conflict")

// Debit withdraws tokens from an account. The balance check and the ledger
// append happen in one DynamoDB transaction conditioned on the pre-read
// account version, so two racing debits can never jointly overdraw.
func (s *Store) Debit(ctx context.Context, accountID string, amount int64, referenceID string) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive, got %d", amount)
	}
	return s.applyEntry(ctx, accountID, models.TxDebit, -amount, referenceID)
}

// Credit adds purchased tokens, idempotently by referenceID.
func (s *Store) Credit(ctx context.Context, accountID string, amount int64, referenceID string) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	return s.applyEntry(ctx, accountID, models.TxPurchase, amount, referenceID)
}

// Refund returns previously debited tokens, idempotently by referenceID.
func (s *Store) Refund(ctx context.Context, accountID string, amount int64, referenceID string) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("refund amount must be positive, got %d", amount)
	}
	return s.applyEntry(ctx, accountID, models.TxRefund, amount, referenceID)
}

// Balance returns the current token balance of an account.
func (s *Store) Balance(ctx context.Context, accountID string) (int64, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func ledgerTxID(txType models.TransactionType, referenceID string) string {
	return fmt.Sprintf("%s#%s", txType, referenceID)
}

// applyEntry runs one ledger mutation: a conditional balance update on the
// account row plus an idempotent put of the ledger entry, as a single
// TransactWriteItems call. amount is signed (negative for debits).
//
// Failure handling, in order:
//   - the entry put lost to an existing tx_id: the reference was already
//     applied, return the recorded balance_after (idempotent no-op);
//   - the account update lost the version CAS: re-read and retry with
//     backoff, surfacing ErrInsufficientTokens if the fresh balance no
//     longer covers a debit.
func (s *Store) applyEntry(ctx context.Context, accountID string, txType models.TransactionType, amount int64, referenceID string) (int64, error) {
	txID := ledgerTxID(txType, referenceID)

	var newBalance int64
	backoff := retry.WithMaxRetries(maxLedgerRetries, retry.NewExponential(20*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		account, err := s.GetAccount(ctx, accountID)
		if err != nil {
			return err
		}

		if account.Balance+amount < 0 {
			return storage.ErrInsufficientTokens
		}

		entry := models.LedgerEntry{
			TxID:          txID,
			AccountID:     accountID,
			Type:          txType,
			Amount:        amount,
			BalanceBefore: account.Balance,
			BalanceAfter:  account.Balance + amount,
			ReferenceID:   referenceID,
			CreatedAt:     time.Now(),
			GSI1PK:        ledgerPartition,
		}
		entryAV, err := attributevalue.MarshalMap(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal ledger entry: %w", err)
		}

		input := &dynamodb.TransactWriteItemsInput{
			TransactItems: []types.TransactWriteItem{
				{
					// Operation 1: apply the new balance to the account.
					Update: &types.Update{
						TableName: aws.String(s.AccountsTableName),
						Key: map[string]types.AttributeValue{
							"account_id": &types.AttributeValueMemberS{Value: accountID},
						},
						UpdateExpression:    aws.String("SET balance = :new_balance, version = version + :inc, updated_at = :now"),
						ConditionExpression: aws.String("version = :version AND balance = :old_balance"),
						ExpressionAttributeValues: map[string]types.AttributeValue{
							":new_balance": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", entry.BalanceAfter)},
							":old_balance": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", entry.BalanceBefore)},
							":version":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
							":inc":         &types.AttributeValueMemberN{Value: "1"},
							":now":         &types.AttributeValueMemberS{Value: entry.CreatedAt.Format(time.RFC3339Nano)},
						},
					},
				},
				{
					// Operation 2: append the immutable ledger entry.
					Put: &types.Put{
						TableName:           aws.String(s.LedgerTableName),
						Item:                entryAV,
						ConditionExpression: aws.String("attribute_not_exists(tx_id)"),
					},
				},
			},
		}

		if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
			var tce *types.TransactionCanceledException
			if errors.As(err, &tce) && len(tce.CancellationReasons) == 2 {
				if cancellationCode(tce.CancellationReasons[1]) == "ConditionalCheckFailed" {
					// Duplicate reference. Surface the result of the first
					// application instead of charging/crediting again.
					existing, gerr := s.getLedgerEntry(ctx, txID)
					if gerr != nil {
						return gerr
					}
					slog.Log(ctx, slog.LevelDebug, "ledger entry already applied",
						"tx_id", txID, "balance_after", existing.BalanceAfter)
					newBalance = existing.BalanceAfter
					return nil
				}
				if cancellationCode(tce.CancellationReasons[0]) == "ConditionalCheckFailed" {
					return retry.RetryableError(errVersionConflict)
				}
			}
			return fmt.Errorf("failed to execute ledger transaction: %w", err)
		}

		newBalance = entry.BalanceAfter
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrInsufficientTokens) {
			return 0, storage.ErrInsufficientTokens
		}
		return 0, fmt.Errorf("ledger %s for reference %s: %w", txType, referenceID, err)
	}

	return newBalance, nil
}

// ListTransactions retrieves the most recent ledger entries for an account.
func (s *Store) ListTransactions(ctx context.Context, accountID string, limit int32) ([]models.LedgerEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LedgerTableName),
		IndexName:              aws.String(accountLedgerGSI),
		KeyConditionExpression: aws.String("account_id = :account_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":account_id": &types.AttributeValueMemberS{Value: accountID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}

	var entries []models.LedgerEntry
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger entries: %w", err)
	}

	return entries, nil
}

func (s *Store) getLedgerEntry(ctx context.Context, txID string) (*models.LedgerEntry, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.LedgerTableName),
		Key: map[string]types.AttributeValue{
			"tx_id": &types.AttributeValueMemberS{Value: txID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("ledger entry %s not found", txID)
	}

	var entry models.LedgerEntry
	if err := attributevalue.UnmarshalMap(result.Item, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger entry: %w", err)
	}
	return &entry, nil
}

func cancellationCode(reason types.CancellationReason) string {
	if reason.Code == nil {
		return ""
	}
	return *reason.Code
}
