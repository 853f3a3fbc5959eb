package jobs

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/render-broker/pkg/api"
	"github.com/clipforge/render-broker/pkg/auth"
	"github.com/clipforge/render-broker/pkg/middleware"
	"github.com/clipforge/render-broker/pkg/models"
	"github.com/clipforge/render-broker/pkg/storage"
	storage_mocks "github.com/clipforge/render-broker/pkg/storage/mocks"
)

var jobID = uuid.MustParse("11111111-2222-3333-4444-555555555555")

func ownedJob() *models.RenderJob {
	return &models.RenderJob{
		ID:              jobID.String(),
		AccountID:       "acct-1",
		Status:          models.JobQueued,
		EstimatedTokens: 3,
		TokensDebited:   3,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func authedRequest(method, target string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(method, target, nil)
	ctx := middleware.WithIdentity(req.Context(), &auth.Identity{AccountID: "acct-1"})
	return httptest.NewRecorder(), req.WithContext(ctx)
}

func TestGetJobById(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := NewJobsHandler(mockStore, slog.Default())

		mockStore.On("GetJob", mock.Anything, jobID.String()).Return(ownedJob(), nil)

		w, req := authedRequest(http.MethodGet, "/jobs/"+jobID.String())
		h.GetJobById(w, req, jobID)

		require.Equal(t, http.StatusOK, w.Code)
		var resp api.Job
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, api.JobStatusQueued, resp.Status)
		assert.Equal(t, int64(3), resp.EstimatedTokens)
	})

	t.Run("Unknown Job", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := NewJobsHandler(mockStore, slog.Default())

		mockStore.On("GetJob", mock.Anything, jobID.String()).Return(nil, storage.ErrJobNotFound)

		w, req := authedRequest(http.MethodGet, "/jobs/"+jobID.String())
		h.GetJobById(w, req, jobID)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Foreign Job Reads As Missing", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := NewJobsHandler(mockStore, slog.Default())

		job := ownedJob()
		job.AccountID = "acct-2"
		mockStore.On("GetJob", mock.Anything, jobID.String()).Return(job, nil)

		w, req := authedRequest(http.MethodGet, "/jobs/"+jobID.String())
		h.GetJobById(w, req, jobID)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		h := NewJobsHandler(new(storage_mocks.Storage), slog.Default())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/jobs/"+jobID.String(), nil)
		h.GetJobById(w, req, jobID)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetVideoLinks(t *testing.T) {
	t.Run("Prefers Durable Copy", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := NewJobsHandler(mockStore, slog.Default())

		job := ownedJob()
		job.Status = models.JobCompleted
		job.AssetURL = "https://cdn/renders/acct-1/job.mp4"
		job.ProviderURL = "https://provider/out.mp4"
		mockStore.On("GetJob", mock.Anything, jobID.String()).Return(job, nil)

		w, req := authedRequest(http.MethodGet, "/videos/"+jobID.String())
		h.GetVideoLinks(w, req, jobID)

		require.Equal(t, http.StatusOK, w.Code)
		var resp api.VideoLinks
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.VideoUrl)
		assert.Equal(t, "https://cdn/renders/acct-1/job.mp4", *resp.VideoUrl)
	})
}

func TestCancelJobById(t *testing.T) {
	t.Run("Cancels And Refunds", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := NewJobsHandler(mockStore, slog.Default())

		mockStore.On("GetJob", mock.Anything, jobID.String()).Return(ownedJob(), nil)
		mockStore.On("CancelJob", mock.Anything, jobID.String(), int64(3)).Return(nil)
		mockStore.On("Refund", mock.Anything, "acct-1", int64(3), jobID.String()).Return(int64(10), nil)

		w, req := authedRequest(http.MethodDelete, "/jobs/"+jobID.String())
		h.CancelJobById(w, req, jobID)

		require.Equal(t, http.StatusOK, w.Code)
		var resp api.Job
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, api.JobStatusCancelled, resp.Status)
		mockStore.AssertExpectations(t)
	})

	t.Run("Claimed Job Refuses Cancellation", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		h := NewJobsHandler(mockStore, slog.Default())

		job := ownedJob()
		job.Status = models.JobProcessing
		mockStore.On("GetJob", mock.Anything, jobID.String()).Return(job, nil)
		mockStore.On("CancelJob", mock.Anything, jobID.String(), int64(3)).
			Return(storage.ErrJobNotCancellable)

		w, req := authedRequest(http.MethodDelete, "/jobs/"+jobID.String())
		h.CancelJobById(w, req, jobID)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockStore.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
