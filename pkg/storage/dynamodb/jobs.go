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

	"github.com/clipforge/render-broker/pkg/models"
	"github.com/clipforge/render-broker/pkg/storage"
)

const (
	stuckJobGSI   = "status-created_at-index"
	externalIDGSI = "external_job_id-index"
)

// CreateJob persists a new render job in the queued state. The caller
// provides the id, because it is generated before the ledger debit so the
// debit's reference id is stable.
func (s *Store) CreateJob(ctx context.Context, job *models.RenderJob) (*models.RenderJob, error) {
	if job.ID == "" {
		return nil, errors.New("job id must be set before creation")
	}

	now := time.Now()
	job.Status = models.JobQueued
	job.CreatedAt = now
	job.UpdatedAt = now

	item, err := attributevalue.MarshalMap(job)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.JobsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return job, nil
}

// GetJob retrieves a render job from DynamoDB by its ID.
func (s *Store) GetJob(ctx context.Context, jobID string) (*models.RenderJob, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.JobsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: jobID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get job from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrJobNotFound, jobID)
	}

	var job models.RenderJob
	if err := attributevalue.UnmarshalMap(result.Item, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

// GetJobByExternalID retrieves a render job by the provider-assigned id.
// Used by the webhook path, which only knows the provider's identifier.
func (s *Store) GetJobByExternalID(ctx context.Context, externalID string) (*models.RenderJob, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.JobsTableName),
		IndexName:              aws.String(externalIDGSI),
		KeyConditionExpression: aws.String("external_job_id = :external_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":external_id": &types.AttributeValueMemberS{Value: externalID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query job by external id: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("%w: external id %s", storage.ErrJobNotFound, externalID)
	}

	var job models.RenderJob
	if err := attributevalue.UnmarshalMap(result.Items[0], &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

// ClaimJob atomically transitions a job from queued to processing. Only one
// of several racing workers can win; the rest get ErrJobNotClaimable. This
// is the lock that gives effectively-once processing on top of the queue's
// at-least-once delivery.
func (s *Store) ClaimJob(ctx context.Context, jobID string) (*models.RenderJob, error) {
	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.JobsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: jobID},
		},
		UpdateExpression:    aws.String("SET #status = :processing, updated_at = :now"),
		ConditionExpression: aws.String("#status = :queued"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":processing": &types.AttributeValueMemberS{Value: string(models.JobProcessing)},
			":queued":     &types.AttributeValueMemberS{Value: string(models.JobQueued)},
			":now":        &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339Nano)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrJobNotClaimable
		}
		return nil, fmt.Errorf("failed to claim job %s: %w", jobID, err)
	}

	var job models.RenderJob
	if err := attributevalue.UnmarshalMap(result.Attributes, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal claimed job: %w", err)
	}
	return &job, nil
}

// SetJobSubmitted records the provider-assigned external job id on a
// processing job.
func (s *Store) SetJobSubmitted(ctx context.Context, jobID, externalID string) error {
	return s.transition(ctx, jobID, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.JobsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: jobID},
		},
		UpdateExpression:    aws.String("SET external_job_id = :external_id, updated_at = :now"),
		ConditionExpression: aws.String("#status = :processing"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":external_id": &types.AttributeValueMemberS{Value: externalID},
			":processing":  &types.AttributeValueMemberS{Value: string(models.JobProcessing)},
			":now":         &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339Nano)},
		},
	}, storage.ErrStaleTransition)
}

// CompleteJob transitions processing -> completed with the durable asset
// URL. A duplicate completion (second webhook, racing poller) fails the
// condition and surfaces ErrStaleTransition, never a second mutation.
func (s *Store) CompleteJob(ctx context.Context, jobID, assetURL, providerURL string) error {
	now := time.Now().Format(time.RFC3339Nano)
	return s.transition(ctx, jobID, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.JobsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: jobID},
		},
		UpdateExpression:    aws.String("SET #status = :completed, asset_url = :asset_url, provider_url = :provider_url, completed_at = :now, updated_at = :now"),
		ConditionExpression: aws.String("#status = :processing"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":completed":    &types.AttributeValueMemberS{Value: string(models.JobCompleted)},
			":processing":   &types.AttributeValueMemberS{Value: string(models.JobProcessing)},
			":asset_url":    &types.AttributeValueMemberS{Value: assetURL},
			":provider_url": &types.AttributeValueMemberS{Value: providerURL},
			":now":          &types.AttributeValueMemberS{Value: now},
		},
	}, storage.ErrStaleTransition)
}

// FailJob transitions queued|processing -> failed, recording the error and
// how many tokens were refunded.
func (s *Store) FailJob(ctx context.Context, jobID, errorMessage string, tokensRefunded int64) error {
	now := time.Now().Format(time.RFC3339Nano)
	return s.transition(ctx, jobID, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.JobsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: jobID},
		},
		UpdateExpression:    aws.String("SET #status = :failed, error_message = :error_message, tokens_refunded = :refunded, completed_at = :now, updated_at = :now"),
		ConditionExpression: aws.String("#status = :queued OR #status = :processing"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":failed":        &types.AttributeValueMemberS{Value: string(models.JobFailed)},
			":queued":        &types.AttributeValueMemberS{Value: string(models.JobQueued)},
			":processing":    &types.AttributeValueMemberS{Value: string(models.JobProcessing)},
			":error_message": &types.AttributeValueMemberS{Value: errorMessage},
			":refunded":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tokensRefunded)},
			":now":           &types.AttributeValueMemberS{Value: now},
		},
	}, storage.ErrStaleTransition)
}

// CancelJob transitions queued -> cancelled. A job that a worker has already
// claimed is past the point of no return and gets ErrJobNotCancellable.
func (s *Store) CancelJob(ctx context.Context, jobID string, tokensRefunded int64) error {
	now := time.Now().Format(time.RFC3339Nano)
	return s.transition(ctx, jobID, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.JobsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: jobID},
		},
		UpdateExpression:    aws.String("SET #status = :cancelled, tokens_refunded = :refunded, completed_at = :now, updated_at = :now"),
		ConditionExpression: aws.String("#status = :queued"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cancelled": &types.AttributeValueMemberS{Value: string(models.JobCancelled)},
			":queued":    &types.AttributeValueMemberS{Value: string(models.JobQueued)},
			":refunded":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tokensRefunded)},
			":now":       &types.AttributeValueMemberS{Value: now},
		},
	}, storage.ErrJobNotCancellable)
}

// BumpJobRetry increments the job's retry counter.
func (s *Store) BumpJobRetry(ctx context.Context, jobID string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.JobsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: jobID},
		},
		UpdateExpression:    aws.String("SET retry_count = retry_count + :inc, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":inc": &types.AttributeValueMemberN{Value: "1"},
			":now": &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to bump retry count for job %s: %w", jobID, err)
	}
	return nil
}

// GetStuckJobs retrieves jobs that have sat in the given status for longer
// than maxAge, via the status GSI.
func (s *Store) GetStuckJobs(ctx context.Context, status models.JobStatus, maxAge time.Duration) ([]models.RenderJob, error) {
	cutoff := time.Now().Add(-maxAge)
	cutoffStr, err := cutoff.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.JobsTableName),
		IndexName:              aws.String(stuckJobGSI),
		KeyConditionExpression: aws.String("#status = :status"),
		FilterExpression:       aws.String("created_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
			":cutoff": &types.AttributeValueMemberS{Value: string(cutoffStr)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query for stuck jobs: %w", err)
	}

	var jobs []models.RenderJob
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &jobs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stuck jobs: %w", err)
	}
	return jobs, nil
}

// transition runs a conditional lifecycle update, mapping a failed condition
// to the given sentinel.
func (s *Store) transition(ctx context.Context, jobID string, input *dynamodb.UpdateItemInput, onCondFail error) error {
	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return onCondFail
		}
		return fmt.Errorf("failed to update job %s: %w", jobID, err)
	}
	return nil
}
