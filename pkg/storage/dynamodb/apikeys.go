package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/clipforge/render-broker/pkg/models"
	"github.com/clipforge/render-broker/pkg/storage"
)

const (
	secretHashGSI = "secret_hash-index"
	accountKeyGSI = "account_id-index"

	// maxActiveKeys caps active API keys per account.
	maxActiveKeys = 10
)

// CreateApiKey persists a new API key after enforcing the per-account
// limits. The limit checks are read-then-write; worst case a racing pair of
// creations overshoots by one, which is acceptable for a self-service cap.
func (s *Store) CreateApiKey(ctx context.Context, key *models.ApiKey) (*models.ApiKey, error) {
	existing, err := s.ListApiKeys(ctx, key.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing keys: %w", err)
	}

	active := 0
	for _, k := range existing {
		if k.IsActive {
			active++
		}
		if k.Name == key.Name {
			return nil, storage.ErrDuplicateKeyName
		}
	}
	if active >= maxActiveKeys {
		return nil, storage.ErrKeyLimitExceeded
	}

	if key.ID == "" {
		key.ID = uuid.New().String()
	}
	key.IsActive = true
	key.CreatedAt = time.Now()

	item, err := attributevalue.MarshalMap(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal api key: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.ApiKeysTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create api key: %w", err)
	}

	return key, nil
}

// GetApiKeyByHash resolves a key by the sha256 hash of its secret.
func (s *Store) GetApiKeyByHash(ctx context.Context, secretHash string) (*models.ApiKey, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.ApiKeysTableName),
		IndexName:              aws.String(secretHashGSI),
		KeyConditionExpression: aws.String("secret_hash = :hash"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":hash": &types.AttributeValueMemberS{Value: secretHash},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query api key by hash: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, storage.ErrKeyNotFound
	}

	var key models.ApiKey
	if err := attributevalue.UnmarshalMap(result.Items[0], &key); err != nil {
		return nil, fmt.Errorf("failed to unmarshal api key: %w", err)
	}
	return &key, nil
}

// ListApiKeys retrieves all keys belonging to an account.
func (s *Store) ListApiKeys(ctx context.Context, accountID string) ([]models.ApiKey, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.ApiKeysTableName),
		IndexName:              aws.String(accountKeyGSI),
		KeyConditionExpression: aws.String("account_id = :account_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":account_id": &types.AttributeValueMemberS{Value: accountID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}

	var keys []models.ApiKey
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &keys); err != nil {
		return nil, fmt.Errorf("failed to unmarshal api keys: %w", err)
	}
	return keys, nil
}

// DeactivateApiKey soft-deletes a key. The ownership check rides on the
// condition expression so a foreign key id behaves like a missing one.
func (s *Store) DeactivateApiKey(ctx context.Context, accountID, keyID string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.ApiKeysTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: keyID},
		},
		UpdateExpression:    aws.String("SET is_active = :inactive"),
		ConditionExpression: aws.String("account_id = :account_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":inactive":   &types.AttributeValueMemberBOOL{Value: false},
			":account_id": &types.AttributeValueMemberS{Value: accountID},
		},
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrKeyNotFound
		}
		return fmt.Errorf("failed to deactivate api key %s: %w", keyID, err)
	}
	return nil
}

// TouchApiKey updates last_used_at after a successful authentication.
func (s *Store) TouchApiKey(ctx context.Context, keyID string, usedAt time.Time) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.ApiKeysTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: keyID},
		},
		UpdateExpression:    aws.String("SET last_used_at = :used_at"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":used_at": &types.AttributeValueMemberS{Value: usedAt.Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to touch api key %s: %w", keyID, err)
	}
	return nil
}
