package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ShotstackClient implements RenderProvider against the Shotstack edit API.
type ShotstackClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewShotstackClient creates a client with a bounded request timeout.
func NewShotstackClient(baseURL, apiKey string) *ShotstackClient {
	return &ShotstackClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ RenderProvider = (*ShotstackClient)(nil)

type submitResponse struct {
	Response struct {
		ID string `json:"id"`
	} `json:"response"`
}

type pollResponse struct {
	Response struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		URL    string `json:"url"`
		Error  string `json:"error"`
	} `json:"response"`
}

// Submit posts the render payload. A 4xx answer means the payload itself is
// unacceptable and maps to ErrRejected; other failures are transient.
func (c *ShotstackClient) Submit(ctx context.Context, spec json.RawMessage) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/render", bytes.NewReader(spec))
	if err != nil {
		return "", fmt.Errorf("failed to build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit render: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, body)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected submit status %d", resp.StatusCode)
	}

	var parsed submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode submit response: %w", err)
	}
	if parsed.Response.ID == "" {
		return "", fmt.Errorf("submit response missing render id")
	}

	return parsed.Response.ID, nil
}

// Poll fetches the provider's view of the render.
func (c *ShotstackClient) Poll(ctx context.Context, externalID string) (*RenderState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/render/"+externalID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build poll request: %w", err)
	}
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to poll render %s: %w", externalID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected poll status %d for render %s", resp.StatusCode, externalID)
	}

	var parsed pollResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode poll response: %w", err)
	}

	return &RenderState{
		ExternalID: externalID,
		Status:     MapStatus(parsed.Response.Status),
		URL:        parsed.Response.URL,
		Error:      parsed.Response.Error,
	}, nil
}

// MapStatus collapses the provider's status vocabulary into the three states
// the broker acts on. Unknown and intermediate statuses are still pending.
func MapStatus(s string) Status {
	switch s {
	case "done":
		return StatusDone
	case "failed":
		return StatusFailed
	default:
		return StatusPending
	}
}
