package mapping

import (
	"github.com/google/uuid"

	"github.com/clipforge/render-broker/pkg/api"
	"github.com/clipforge/render-broker/pkg/models"
)

// ToApiJob converts a domain RenderJob model to an API Job model.
func ToApiJob(job *models.RenderJob) *api.Job {
	out := &api.Job{
		Id:              parseUUID(job.ID),
		Status:          api.JobStatus(job.Status),
		EstimatedTokens: job.EstimatedTokens,
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
		CompletedAt:     job.CompletedAt,
	}
	if job.TokensRefunded > 0 {
		out.TokensRefunded = &job.TokensRefunded
	}
	if job.AssetURL != "" {
		out.AssetUrl = &job.AssetURL
	}
	if job.ErrorMessage != "" {
		out.ErrorMessage = &job.ErrorMessage
	}
	return out
}

// ToApiVideoLinks converts a domain RenderJob to the video link view. The
// durable URL takes priority over the provider URL, which expires.
func ToApiVideoLinks(job *models.RenderJob) *api.VideoLinks {
	out := &api.VideoLinks{
		JobId:  parseUUID(job.ID),
		Status: api.JobStatus(job.Status),
	}
	switch {
	case job.AssetURL != "":
		out.VideoUrl = &job.AssetURL
	case job.ProviderURL != "":
		out.VideoUrl = &job.ProviderURL
	}
	return out
}

// ToApiApiKey converts a domain ApiKey model to an API ApiKey model. The
// secret hash is never exposed.
func ToApiApiKey(key *models.ApiKey) *api.ApiKey {
	return &api.ApiKey{
		Id:         parseUUID(key.ID),
		Name:       key.Name,
		IsActive:   key.IsActive,
		CreatedAt:  key.CreatedAt,
		LastUsedAt: key.LastUsedAt,
	}
}

// ToApiLedgerEntry converts a domain LedgerEntry model to an API LedgerEntry model.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	return &api.LedgerEntry{
		TxId:         entry.TxID,
		Type:         api.LedgerEntryType(entry.Type),
		Amount:       entry.Amount,
		BalanceAfter: entry.BalanceAfter,
		ReferenceId:  entry.ReferenceID,
		CreatedAt:    entry.CreatedAt,
	}
}

// parseUUID converts a stored id back to its UUID form. Ids are generated
// with uuid.New, so a parse failure means a corrupt record; the zero UUID is
// returned rather than panicking on a read path.
func parseUUID(s string) uuid.UUID {
	id, _ := uuid.Parse(s)
	return id
}
