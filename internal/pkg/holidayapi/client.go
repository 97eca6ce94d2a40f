package holidayapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kintai-assist/kintai-backend-go/internal/domain/holiday"
)

// Client fetches the public holiday mapping from a holidays-jp style
// endpoint: a flat JSON object of "YYYY-MM-DD" → holiday name.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchHolidayMap implements holiday.Lookup.
func (c *Client) FetchHolidayMap(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", holiday.ErrFetchFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", holiday.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: holiday API returned %d", holiday.ErrFetchFailed, resp.StatusCode)
	}

	var days map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&days); err != nil {
		return nil, fmt.Errorf("%w: decoding holiday API response: %v", holiday.ErrFetchFailed, err)
	}

	return days, nil
}
