package scheduler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSQSAPI struct {
	mock.Mock
}

func (m *mockSQSAPI) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*sqs.SendMessageOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestScheduleJob(t *testing.T) {
	t.Run("Encodes Job Id And Delay", func(t *testing.T) {
		mockClient := new(mockSQSAPI)
		s := NewSQSScheduler(mockClient, "https://queue.example/jobs")

		mockClient.On("SendMessage", mock.Anything, mock.MatchedBy(func(input *sqs.SendMessageInput) bool {
			var msg JobMessage
			require.NoError(t, json.Unmarshal([]byte(*input.MessageBody), &msg))
			return *input.QueueUrl == "https://queue.example/jobs" &&
				msg.JobID == "job-123" &&
				input.DelaySeconds == 15
		})).Return(&sqs.SendMessageOutput{}, nil)

		err := s.ScheduleJob(context.Background(), "job-123", 15*time.Second)
		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Propagates Send Error", func(t *testing.T) {
		mockClient := new(mockSQSAPI)
		s := NewSQSScheduler(mockClient, "https://queue.example/jobs")

		mockClient.On("SendMessage", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		err := s.ScheduleJob(context.Background(), "job-123", 0)
		assert.Error(t, err)
	})
}
