// Package provider talks to the upstream render farm. The broker submits
// opaque payloads and observes render progress; everything else about the
// render is the provider's business.
package provider

import (
	"context"
	"encoding/json"
	"errors"
)

// Status is the broker's view of a provider-side render.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// RenderState is a snapshot of a provider-side render, delivered either by
// polling or by webhook.
type RenderState struct {
	ExternalID string
	Status     Status
	// URL points at the finished asset on provider storage. Set only when
	// Status is StatusDone.
	URL string
	// Error carries the provider's failure reason when Status is StatusFailed.
	Error string
}

// ErrRejected marks a submission the provider refused outright. Rejections
// are permanent; retrying the same payload cannot succeed.
var ErrRejected = errors.New("render rejected by provider")

// RenderProvider submits render payloads and reports their progress.
type RenderProvider interface {
	// Submit sends the payload upstream and returns the provider's id for
	// the render.
	Submit(ctx context.Context, spec json.RawMessage) (string, error)
	// Poll fetches the current state of a previously submitted render.
	Poll(ctx context.Context, externalID string) (*RenderState, error)
}
