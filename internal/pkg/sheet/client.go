package sheet

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Client fetches published CSV tables over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads and parses one table. A non-2xx status is an error; there
// is no retry, the next refresh cycle simply tries again.
func (c *Client) Fetch(ctx context.Context, url string) (*Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sheet fetch returned status %d", resp.StatusCode)
	}

	table, err := ParseTable(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet: %w", err)
	}
	return table, nil
}
