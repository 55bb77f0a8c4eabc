package sysstats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client fetches samples from a running stats daemon.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Client for the daemon listening on addr.
func NewClient(addr string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "http://" + addr,
	}
}

// Fetch returns every sample the daemon has collected so far.
func (c *Client) Fetch(ctx context.Context) ([]Sample, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats server returned %s", resp.Status)
	}

	var samples []Sample
	if err := json.NewDecoder(resp.Body).Decode(&samples); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}

	return samples, nil
}
