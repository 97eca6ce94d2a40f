package teamspirit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/attendance"
)

// Client talks to the scrape agent, the browser-side collaborator that
// extracts the monthly punch table from the source system. The agent bounds
// its own scrape duration; the HTTP timeout here only covers transport.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchMonthSnapshot implements attendance.SnapshotFetcher. A 401 from the
// agent means it was redirected to a login page and is surfaced as
// ErrSessionExpired.
func (c *Client) FetchMonthSnapshot(ctx context.Context) (attendance.RawMonthSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/snapshot", nil)
	if err != nil {
		return attendance.RawMonthSnapshot{}, fmt.Errorf("%w: %v", attendance.ErrFetchFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return attendance.RawMonthSnapshot{}, fmt.Errorf("%w: %v", attendance.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return attendance.RawMonthSnapshot{}, attendance.ErrSessionExpired
	case resp.StatusCode != http.StatusOK:
		return attendance.RawMonthSnapshot{}, fmt.Errorf("%w: agent returned %d", attendance.ErrFetchFailed, resp.StatusCode)
	}

	var raw attendance.RawMonthSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return attendance.RawMonthSnapshot{}, fmt.Errorf("%w: decoding agent response: %v", attendance.ErrFetchFailed, err)
	}

	return raw, nil
}
