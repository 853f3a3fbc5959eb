package dynamodb

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/render-broker/pkg/models"
	"github.com/clipforge/render-broker/pkg/storage"
	"github.com/clipforge/render-broker/pkg/storage/dynamodb/mocks"
)

func jobItem(t *testing.T, job models.RenderJob) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(job)
	require.NoError(t, err)
	return item
}

func TestCreateJob(t *testing.T) {
	t.Run("Sets Queued Status", func(t *testing.T) {
		mockDB := new(mocks.DynamoDBAPI)
		store := newTestStore(mockDB)

		mockDB.On("PutItem", mock.Anything, mock.MatchedBy(func(input *awsdynamodb.PutItemInput) bool {
			status := input.Item["status"].(*types.AttributeValueMemberS).Value
			return *input.TableName == "jobs-table" &&
				status == "queued" &&
				*input.ConditionExpression == "attribute_not_exists(id)"
		})).Return(&awsdynamodb.PutItemOutput{}, nil)

		created, err := store.CreateJob(context.Background(), &models.RenderJob{
			ID:              "job-1",
			AccountID:       "acct-1",
			EstimatedTokens: 3,
			TokensDebited:   3,
		})
		require.NoError(t, err)
		assert.Equal(t, models.JobQueued, created.Status)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("Requires Caller-Supplied Id", func(t *testing.T) {
		store := newTestStore(new(mocks.DynamoDBAPI))
		_, err := store.CreateJob(context.Background(), &models.RenderJob{})
		assert.Error(t, err)
	})
}

func TestClaimJob(t *testing.T) {
	t.Run("Wins Claim", func(t *testing.T) {
		mockDB := new(mocks.DynamoDBAPI)
		store := newTestStore(mockDB)

		claimed := models.RenderJob{ID: "job-1", AccountID: "acct-1", Status: models.JobProcessing, CreatedAt: time.Now()}
		mockDB.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *awsdynamodb.UpdateItemInput) bool {
			return *input.ConditionExpression == "#status = :queued" &&
				input.ReturnValues == types.ReturnValueAllNew
		})).Return(&awsdynamodb.UpdateItemOutput{Attributes: jobItem(t, claimed)}, nil)

		job, err := store.ClaimJob(context.Background(), "job-1")
		require.NoError(t, err)
		assert.Equal(t, models.JobProcessing, job.Status)
	})

	t.Run("Loses Claim Race", func(t *testing.T) {
		mockDB := new(mocks.DynamoDBAPI)
		store := newTestStore(mockDB)

		mockDB.On("UpdateItem", mock.Anything, mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{})

		_, err := store.ClaimJob(context.Background(), "job-1")
		assert.ErrorIs(t, err, storage.ErrJobNotClaimable)
	})
}

func TestCompleteJob(t *testing.T) {
	t.Run("Duplicate Completion Is Stale", func(t *testing.T) {
		mockDB := new(mocks.DynamoDBAPI)
		store := newTestStore(mockDB)

		mockDB.On("UpdateItem", mock.Anything, mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{})

		err := store.CompleteJob(context.Background(), "job-1", "https://cdn/x.mp4", "https://provider/x.mp4")
		assert.ErrorIs(t, err, storage.ErrStaleTransition)
	})

	t.Run("Records Asset URLs", func(t *testing.T) {
		mockDB := new(mocks.DynamoDBAPI)
		store := newTestStore(mockDB)

		mockDB.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *awsdynamodb.UpdateItemInput) bool {
			assetURL := input.ExpressionAttributeValues[":asset_url"].(*types.AttributeValueMemberS).Value
			return assetURL == "https://cdn/x.mp4" &&
				*input.ConditionExpression == "#status = :processing"
		})).Return(&awsdynamodb.UpdateItemOutput{}, nil)

		err := store.CompleteJob(context.Background(), "job-1", "https://cdn/x.mp4", "https://provider/x.mp4")
		assert.NoError(t, err)
	})
}

func TestCancelJob(t *testing.T) {
	t.Run("Only Queued Jobs Cancel", func(t *testing.T) {
		mockDB := new(mocks.DynamoDBAPI)
		store := newTestStore(mockDB)

		mockDB.On("UpdateItem", mock.Anything, mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{})

		err := store.CancelJob(context.Background(), "job-1", 3)
		assert.ErrorIs(t, err, storage.ErrJobNotCancellable)
	})
}

func TestFailJob(t *testing.T) {
	t.Run("Records Refund Amount", func(t *testing.T) {
		mockDB := new(mocks.DynamoDBAPI)
		store := newTestStore(mockDB)

		mockDB.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *awsdynamodb.UpdateItemInput) bool {
			refunded := input.ExpressionAttributeValues[":refunded"].(*types.AttributeValueMemberN).Value
			return refunded == "3"
		})).Return(&awsdynamodb.UpdateItemOutput{}, nil)

		err := store.FailJob(context.Background(), "job-1", "render timed out", 3)
		assert.NoError(t, err)
	})
}

func TestGetJobByExternalID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockDB := new(mocks.DynamoDBAPI)
		store := newTestStore(mockDB)

		job := models.RenderJob{ID: "job-1", ExternalJobID: "ext-42", Status: models.JobProcessing}
		mockDB.On("Query", mock.Anything, mock.MatchedBy(func(input *awsdynamodb.QueryInput) bool {
			return *input.IndexName == externalIDGSI
		})).Return(&awsdynamodb.QueryOutput{Items: []map[string]types.AttributeValue{jobItem(t, job)}}, nil)

		found, err := store.GetJobByExternalID(context.Background(), "ext-42")
		require.NoError(t, err)
		assert.Equal(t, "job-1", found.ID)
	})

	t.Run("Unknown External Id", func(t *testing.T) {
		mockDB := new(mocks.DynamoDBAPI)
		store := newTestStore(mockDB)

		mockDB.On("Query", mock.Anything, mock.Anything).
			Return(&awsdynamodb.QueryOutput{}, nil)

		_, err := store.GetJobByExternalID(context.Background(), "ext-unknown")
		assert.ErrorIs(t, err, storage.ErrJobNotFound)
	})
}

func TestGetStuckJobs(t *testing.T) {
	t.Run("Queries Status Index", func(t *testing.T) {
		mockDB := new(mocks.DynamoDBAPI)
		store := newTestStore(mockDB)

		old := models.RenderJob{ID: "job-old", Status: models.JobQueued, CreatedAt: time.Now().Add(-time.Hour)}
		mockDB.On("Query", mock.Anything, mock.MatchedBy(func(input *awsdynamodb.QueryInput) bool {
			status := input.ExpressionAttributeValues[":status"].(*types.AttributeValueMemberS).Value
			return *input.IndexName == stuckJobGSI && status == "queued"
		})).Return(&awsdynamodb.QueryOutput{Items: []map[string]types.AttributeValue{jobItem(t, old)}}, nil)

		stuck, err := store.GetStuckJobs(context.Background(), models.JobQueued, 10*time.Minute)
		require.NoError(t, err)
		require.Len(t, stuck, 1)
		assert.Equal(t, "job-old", stuck[0].ID)
	})
}
