package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/clipforge/render-broker/pkg/storage"
)

// DynamoDBAPI captures the subset of the DynamoDB client used by the store.
// Having an interface here keeps the store mockable in unit tests.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client            DynamoDBAPI
	AccountsTableName string
	LedgerTableName   string
	JobsTableName     string
	ApiKeysTableName  string
}

// New creates a new Store.
func New(client DynamoDBAPI, accountsTable, ledgerTable, jobsTable, apiKeysTable string) *Store {
	return &Store{
		Client:            client,
		AccountsTableName: accountsTable,
		LedgerTableName:   ledgerTable,
		JobsTableName:     jobsTable,
		ApiKeysTableName:  apiKeysTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
