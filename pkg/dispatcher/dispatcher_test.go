package dispatcher

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/clipforge/render-broker/pkg/models"
	"github.com/clipforge/render-broker/pkg/provider"
	provider_mocks "github.com/clipforge/render-broker/pkg/provider/mocks"
	relocator_mocks "github.com/clipforge/render-broker/pkg/relocator/mocks"
	"github.com/clipforge/render-broker/pkg/storage"
	storage_mocks "github.com/clipforge/render-broker/pkg/storage/mocks"
)

func newTestDispatcher(store *storage_mocks.SettlementStore, prov *provider_mocks.RenderProvider, rel *relocator_mocks.Relocator) *Dispatcher {
	settler := NewSettler(store, rel, slog.Default())
	settler.TransferAttempts = 0
	cfg := Config{
		Concurrency:    1,
		PollInterval:   time.Millisecond,
		JobTimeout:     time.Minute,
		SubmitAttempts: 0,
	}
	return NewDispatcher(store, prov, settler, nil, "https://queue.example/jobs", cfg, slog.Default())
}

func claimedJob() *models.RenderJob {
	return &models.RenderJob{
		ID:            "job-1",
		AccountID:     "acct-1",
		Status:        models.JobProcessing,
		TokensDebited: 3,
		Spec:          json.RawMessage(`{"timeline": {}}`),
		CreatedAt:     time.Now(),
	}
}

func TestProcessJob(t *testing.T) {
	t.Run("Claim Submit Track Complete", func(t *testing.T) {
		mockStore := new(storage_mocks.SettlementStore)
		mockProv := new(provider_mocks.RenderProvider)
		mockRel := new(relocator_mocks.Relocator)
		d := newTestDispatcher(mockStore, mockProv, mockRel)

		job := claimedJob()
		mockStore.On("ClaimJob", mock.Anything, "job-1").Return(job, nil)
		mockProv.On("Submit", mock.Anything, mock.Anything).Return("ext-42", nil)
		mockStore.On("SetJobSubmitted", mock.Anything, "job-1", "ext-42").Return(nil)
		mockProv.On("Poll", mock.Anything, "ext-42").Return(&provider.RenderState{
			ExternalID: "ext-42",
			Status:     provider.StatusDone,
			URL:        "https://provider/out.mp4",
		}, nil)
		mockRel.On("Relocate", mock.Anything, "https://provider/out.mp4", mock.Anything).
			Return("https://cdn/out.mp4", nil)
		mockStore.On("CompleteJob", mock.Anything, "job-1", "https://cdn/out.mp4", "https://provider/out.mp4").
			Return(nil)

		err := d.ProcessJob(context.Background(), "job-1")
		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
		mockProv.AssertExpectations(t)
	})

	t.Run("Retries Recording The External Id", func(t *testing.T) {
		// Losing the external id would orphan the job, so the write gets
		// the same bounded retries as the submission itself.
		mockStore := new(storage_mocks.SettlementStore)
		mockProv := new(provider_mocks.RenderProvider)
		mockRel := new(relocator_mocks.Relocator)
		settler := NewSettler(mockStore, mockRel, slog.Default())
		settler.TransferAttempts = 0
		cfg := Config{Concurrency: 1, PollInterval: time.Millisecond, JobTimeout: time.Minute, SubmitAttempts: 2}
		d := NewDispatcher(mockStore, mockProv, settler, nil, "https://queue.example/jobs", cfg, slog.Default())

		mockStore.On("ClaimJob", mock.Anything, "job-1").Return(claimedJob(), nil)
		mockProv.On("Submit", mock.Anything, mock.Anything).Return("ext-42", nil)
		mockStore.On("SetJobSubmitted", mock.Anything, "job-1", "ext-42").Return(assert.AnError).Twice()
		mockStore.On("SetJobSubmitted", mock.Anything, "job-1", "ext-42").Return(nil).Once()
		mockProv.On("Poll", mock.Anything, "ext-42").Return(&provider.RenderState{
			Status: provider.StatusDone,
			URL:    "https://provider/out.mp4",
		}, nil)
		mockRel.On("Relocate", mock.Anything, mock.Anything, mock.Anything).Return("https://cdn/out.mp4", nil)
		mockStore.On("CompleteJob", mock.Anything, "job-1", mock.Anything, mock.Anything).Return(nil)

		err := d.ProcessJob(context.Background(), "job-1")
		assert.NoError(t, err)
		mockStore.AssertNumberOfCalls(t, "SetJobSubmitted", 3)
	})

	t.Run("Duplicate Delivery Of Settled Job Is Dropped", func(t *testing.T) {
		mockStore := new(storage_mocks.SettlementStore)
		mockProv := new(provider_mocks.RenderProvider)
		d := newTestDispatcher(mockStore, mockProv, new(relocator_mocks.Relocator))

		job := claimedJob()
		job.Status = models.JobCompleted
		mockStore.On("ClaimJob", mock.Anything, "job-1").Return(nil, storage.ErrJobNotClaimable)
		mockStore.On("GetJob", mock.Anything, "job-1").Return(job, nil)

		err := d.ProcessJob(context.Background(), "job-1")
		assert.NoError(t, err)
		mockProv.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("Re-Adopts Orphaned Submitted Job", func(t *testing.T) {
		// The previous worker recorded the external id and died. The new
		// delivery resumes polling and must never resubmit.
		mockStore := new(storage_mocks.SettlementStore)
		mockProv := new(provider_mocks.RenderProvider)
		mockRel := new(relocator_mocks.Relocator)
		d := newTestDispatcher(mockStore, mockProv, mockRel)

		job := claimedJob()
		job.ExternalJobID = "ext-42"
		mockStore.On("ClaimJob", mock.Anything, "job-1").Return(nil, storage.ErrJobNotClaimable)
		mockStore.On("GetJob", mock.Anything, "job-1").Return(job, nil)
		mockProv.On("Poll", mock.Anything, "ext-42").Return(&provider.RenderState{
			Status: provider.StatusDone,
			URL:    "https://provider/out.mp4",
		}, nil)
		mockRel.On("Relocate", mock.Anything, mock.Anything, mock.Anything).Return("https://cdn/out.mp4", nil)
		mockStore.On("CompleteJob", mock.Anything, "job-1", mock.Anything, mock.Anything).Return(nil)

		err := d.ProcessJob(context.Background(), "job-1")
		assert.NoError(t, err)
		mockProv.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("Fresh Orphan Without External Id Waits", func(t *testing.T) {
		// Claimed moments ago with no external id recorded: the holder may
		// still be mid-submission, so nothing is settled yet.
		mockStore := new(storage_mocks.SettlementStore)
		mockProv := new(provider_mocks.RenderProvider)
		d := newTestDispatcher(mockStore, mockProv, new(relocator_mocks.Relocator))

		job := claimedJob()
		job.ExternalJobID = ""
		mockStore.On("ClaimJob", mock.Anything, "job-1").Return(nil, storage.ErrJobNotClaimable)
		mockStore.On("GetJob", mock.Anything, "job-1").Return(job, nil)

		err := d.ProcessJob(context.Background(), "job-1")
		assert.NoError(t, err)
		mockProv.AssertNotCalled(t, "Poll", mock.Anything, mock.Anything)
		mockStore.AssertNotCalled(t, "FailJob", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockStore.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Expired Orphan Without External Id Is Refunded", func(t *testing.T) {
		// The claiming worker died before the provider accepted the job and
		// the lifetime has run out. Redeliveries must not loop forever: the
		// job is failed and its debit returned.
		mockStore := new(storage_mocks.SettlementStore)
		mockProv := new(provider_mocks.RenderProvider)
		d := newTestDispatcher(mockStore, mockProv, new(relocator_mocks.Relocator))

		job := claimedJob()
		job.ExternalJobID = ""
		job.CreatedAt = time.Now().Add(-2 * time.Minute) // past the 1m test timeout
		mockStore.On("ClaimJob", mock.Anything, "job-1").Return(nil, storage.ErrJobNotClaimable)
		mockStore.On("GetJob", mock.Anything, "job-1").Return(job, nil)
		mockStore.On("FailJob", mock.Anything, "job-1", "job lost before provider submission", int64(3)).Return(nil)
		mockStore.On("Refund", mock.Anything, "acct-1", int64(3), "job-1").Return(int64(10), nil)

		err := d.ProcessJob(context.Background(), "job-1")
		assert.NoError(t, err)
		mockProv.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
		mockStore.AssertExpectations(t)
	})

	t.Run("Provider Rejection Refunds And Fails", func(t *testing.T) {
		mockStore := new(storage_mocks.SettlementStore)
		mockProv := new(provider_mocks.RenderProvider)
		d := newTestDispatcher(mockStore, mockProv, new(relocator_mocks.Relocator))

		mockStore.On("ClaimJob", mock.Anything, "job-1").Return(claimedJob(), nil)
		mockProv.On("Submit", mock.Anything, mock.Anything).Return("", provider.ErrRejected)
		mockStore.On("Refund", mock.Anything, "acct-1", int64(3), "job-1").Return(int64(10), nil)
		mockStore.On("FailJob", mock.Anything, "job-1", mock.Anything, int64(3)).Return(nil)

		err := d.ProcessJob(context.Background(), "job-1")
		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("Render Timeout Refunds", func(t *testing.T) {
		mockStore := new(storage_mocks.SettlementStore)
		mockProv := new(provider_mocks.RenderProvider)
		d := newTestDispatcher(mockStore, mockProv, new(relocator_mocks.Relocator))

		job := claimedJob()
		job.CreatedAt = time.Now().Add(-2 * time.Minute) // past the 1m test timeout
		mockStore.On("ClaimJob", mock.Anything, "job-1").Return(job, nil)
		mockProv.On("Submit", mock.Anything, mock.Anything).Return("ext-42", nil)
		mockStore.On("SetJobSubmitted", mock.Anything, "job-1", "ext-42").Return(nil)
		mockStore.On("Refund", mock.Anything, "acct-1", int64(3), "job-1").Return(int64(10), nil)
		mockStore.On("FailJob", mock.Anything, "job-1", "render timed out", int64(3)).Return(nil)

		err := d.ProcessJob(context.Background(), "job-1")
		assert.NoError(t, err)
		mockProv.AssertNotCalled(t, "Poll", mock.Anything, mock.Anything)
	})

	t.Run("Pending Then Done", func(t *testing.T) {
		mockStore := new(storage_mocks.SettlementStore)
		mockProv := new(provider_mocks.RenderProvider)
		mockRel := new(relocator_mocks.Relocator)
		d := newTestDispatcher(mockStore, mockProv, mockRel)

		mockStore.On("ClaimJob", mock.Anything, "job-1").Return(claimedJob(), nil)
		mockProv.On("Submit", mock.Anything, mock.Anything).Return("ext-42", nil)
		mockStore.On("SetJobSubmitted", mock.Anything, "job-1", "ext-42").Return(nil)
		mockProv.On("Poll", mock.Anything, "ext-42").
			Return(&provider.RenderState{Status: provider.StatusPending}, nil).Twice()
		mockProv.On("Poll", mock.Anything, "ext-42").
			Return(&provider.RenderState{Status: provider.StatusDone, URL: "https://provider/out.mp4"}, nil).Once()
		mockRel.On("Relocate", mock.Anything, mock.Anything, mock.Anything).Return("https://cdn/out.mp4", nil)
		mockStore.On("CompleteJob", mock.Anything, "job-1", mock.Anything, mock.Anything).Return(nil)

		err := d.ProcessJob(context.Background(), "job-1")
		assert.NoError(t, err)
		mockProv.AssertExpectations(t)
	})

	t.Run("Persistent Poll Failure Returns For Redelivery", func(t *testing.T) {
		mockStore := new(storage_mocks.SettlementStore)
		mockProv := new(provider_mocks.RenderProvider)
		d := newTestDispatcher(mockStore, mockProv, new(relocator_mocks.Relocator))

		mockStore.On("ClaimJob", mock.Anything, "job-1").Return(claimedJob(), nil)
		mockProv.On("Submit", mock.Anything, mock.Anything).Return("ext-42", nil)
		mockStore.On("SetJobSubmitted", mock.Anything, "job-1", "ext-42").Return(nil)
		mockProv.On("Poll", mock.Anything, "ext-42").Return(nil, assert.AnError)

		err := d.ProcessJob(context.Background(), "job-1")
		assert.Error(t, err)
		mockStore.AssertNotCalled(t, "FailJob", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockStore.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
