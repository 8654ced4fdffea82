package timer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Remote talks to the timestamp service. The service token doubles as the
// session key, so two machines configured with the same token share a timer.
type Remote struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewRemote creates a client for the timestamp service at baseURL.
func NewRemote(baseURL, serviceToken string) *Remote {
	return &Remote{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      serviceToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Remote) do(ctx context.Context, method string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/timestamp", nil)
	if err != nil {
		return 0, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("timestamp service request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return 0, "", fmt.Errorf("reading response body: %w", err)
	}
	return resp.StatusCode, string(body), nil
}

func (c *Remote) Start(ctx context.Context) (time.Time, error) {
	status, body, err := c.do(ctx, http.MethodPost)
	if err != nil {
		return time.Time{}, err
	}
	if status != http.StatusOK {
		return time.Time{}, fmt.Errorf("timestamp service error %d: %s", status, body)
	}
	return parseMillis(body)
}

func (c *Remote) Current(ctx context.Context) (time.Time, error) {
	status, body, err := c.do(ctx, http.MethodGet)
	if err != nil {
		return time.Time{}, err
	}
	switch status {
	case http.StatusOK:
		return parseMillis(body)
	case http.StatusNotFound:
		return time.Time{}, ErrNotRunning
	default:
		return time.Time{}, fmt.Errorf("timestamp service error %d: %s", status, body)
	}
}

func (c *Remote) Stop(ctx context.Context) (time.Duration, error) {
	started, err := c.Current(ctx)
	if err != nil {
		return 0, err
	}
	status, body, err := c.do(ctx, http.MethodDelete)
	if err != nil {
		return 0, err
	}
	switch status {
	case http.StatusNoContent:
		return time.Since(started), nil
	case http.StatusNotFound:
		return 0, ErrNotRunning
	default:
		return 0, fmt.Errorf("timestamp service error %d: %s", status, body)
	}
}
