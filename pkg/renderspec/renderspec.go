// Package renderspec validates the opaque render payload far enough to
// price it. The payload itself is forwarded to the provider verbatim; only
// the fields needed for validation and token estimation are decoded here.
package renderspec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// MaxSpecBytes bounds the accepted payload size. Checked before any ledger
// interaction so oversized requests never cost tokens.
const MaxSpecBytes = 512 * 1024

// ErrInvalidSpec is returned for structurally invalid render payloads.
var ErrInvalidSpec = errors.New("invalid render spec")

var validate = validator.New()

// Spec is the priced view of a render request. Unknown fields in the raw
// payload are preserved by keeping the raw bytes alongside this struct.
type Spec struct {
	Timeline Timeline                   `json:"timeline" validate:"required"`
	Output   map[string]json.RawMessage `json:"output" validate:"required,min=1"`
	Webhook  string                     `json:"webhook,omitempty" validate:"omitempty,url"`
}

// Timeline mirrors the provider's track/clip layout.
type Timeline struct {
	Tracks []Track `json:"tracks" validate:"required,min=1,dive"`
}

type Track struct {
	Clips []Clip `json:"clips" validate:"dive"`
}

type Clip struct {
	Start  float64 `json:"start" validate:"gte=0"`
	Length float64 `json:"length" validate:"gte=0"`
}

// Parse decodes and validates a raw render payload. All failures wrap
// ErrInvalidSpec so the gateway can map them to a client error.
func Parse(raw []byte) (*Spec, error) {
	if len(raw) > MaxSpecBytes {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes", ErrInvalidSpec, MaxSpecBytes)
	}

	var spec Spec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	if err := validate.Struct(&spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	if spec.Duration() <= 0 {
		return nil, fmt.Errorf("%w: timeline has no positive-length clips", ErrInvalidSpec)
	}

	return &spec, nil
}

// Duration returns the total video duration in seconds: the furthest clip
// end (start + length) across all tracks.
func (s *Spec) Duration() float64 {
	var max float64
	for _, track := range s.Timeline.Tracks {
		for _, clip := range track.Clips {
			if end := clip.Start + clip.Length; end > max {
				max = end
			}
		}
	}
	return max
}

// EstimateTokens prices the spec: one token per started minute of output.
func (s *Spec) EstimateTokens() int64 {
	return EstimateTokens(s.Duration())
}

// EstimateTokens converts a duration in seconds to a token cost, rounding
// partial minutes up.
func EstimateTokens(seconds float64) int64 {
	return int64(math.Ceil(seconds / 60))
}
