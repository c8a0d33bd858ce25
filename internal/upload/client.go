package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PushResult mirrors the server's catalog upload response without importing
// the server package.
type PushResult struct {
	RunID           string `json:"run_id"`
	RecordsReceived int    `json:"records_received"`
	RecordsInserted int64  `json:"records_inserted"`
}

// errPermanent marks responses that retrying cannot fix.
var errPermanent = errors.New("permanent failure")

// Client sends catalogs to a FitPlan server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
	retryDelay time.Duration
}

// NewClient creates a new HTTP client for the FitPlan server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		retryDelay: time.Second,
	}
}

// ServerURL returns the base URL the client talks to.
func (c *Client) ServerURL() string {
	return c.serverURL
}

// PushCatalog POSTs a CSV catalog to the server's catalog endpoint.
// Retries up to 3 times with exponential backoff on transport errors and 5xx responses.
func (c *Client) PushCatalog(ctx context.Context, data []byte) (*PushResult, error) {
	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay << uint(attempt-1)):
			}
		}

		result, err := c.pushOnce(ctx, data)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, errPermanent) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}

func (c *Client) pushOnce(ctx context.Context, data []byte) (*PushResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/v1/catalog", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", errPermanent, err)
	}
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("catalog upload failed (status %d): %s", resp.StatusCode, bytes.TrimSpace(body))
		if resp.StatusCode < 500 {
			return nil, fmt.Errorf("%w: %v", errPermanent, err)
		}
		return nil, err
	}

	var result PushResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", errPermanent, err)
	}
	return &result, nil
}
