package toggl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"

	"togglpace/internal/core/model"
	"togglpace/internal/util"
)

const (
	defaultBaseURL = "https://api.track.toggl.com/api/v9"

	// Toggl rejects very long ranges, so historical fetches go out in
	// chunks of at most this many days.
	maxChunkDays = 30

	maxAttempts  = 3
	retryBackoff = 500 * time.Millisecond
)

// ErrMissingToken is returned when no API token is configured.
var ErrMissingToken = errors.New("toggl: API token not configured (set TOGGL_API_TOKEN)")

// APIError is a non-2xx response from the Toggl API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("toggl: API returned status %d: %s", e.StatusCode, e.Body)
}

// Client fetches time entries from the Toggl Track v9 API. Timestamps in
// the returned payload are re-rendered in the configured timezone so the
// rest of the pipeline only ever sees local instants.
type Client struct {
	baseURL    string
	token      string
	loc        *time.Location
	httpClient *http.Client
}

// NewClient creates a Toggl API client.
func NewClient(token string, loc *time.Location) *Client {
	return NewClientWithBaseURL(token, defaultBaseURL, loc)
}

// NewClientWithBaseURL creates a client against a custom endpoint; tests
// point this at an httptest server.
func NewClientWithBaseURL(token, baseURL string, loc *time.Location) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		loc:     loc,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchPayload fetches today's entries plus historyDays of history relative
// to now's local date, returning them in the {today, historical} shape the
// chart consumes.
func (c *Client) FetchPayload(ctx context.Context, now time.Time, historyDays int) (model.Payload, error) {
	if c.token == "" {
		return model.Payload{}, ErrMissingToken
	}

	local := now.In(c.loc)
	year, month, day := local.Date()
	todayStart := time.Date(year, month, day, 0, 0, 0, 0, c.loc)
	todayEnd := time.Date(year, month, day+1, 0, 0, 0, 0, c.loc)
	historyStart := todayStart.AddDate(0, 0, -historyDays)

	today, err := c.fetchRange(ctx, todayStart, todayEnd)
	if err != nil {
		return model.Payload{}, fmt.Errorf("failed to fetch today's entries: %w", err)
	}

	historical, err := c.FetchHistorical(ctx, historyStart, todayStart)
	if err != nil {
		return model.Payload{}, fmt.Errorf("failed to fetch historical entries: %w", err)
	}

	return model.Payload{Today: today, Historical: historical}, nil
}

// FetchToday fetches only the current local day's entries.
func (c *Client) FetchToday(ctx context.Context, now time.Time) ([]model.RawEntry, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	local := now.In(c.loc)
	year, month, day := local.Date()
	todayStart := time.Date(year, month, day, 0, 0, 0, 0, c.loc)
	todayEnd := time.Date(year, month, day+1, 0, 0, 0, 0, c.loc)

	return c.fetchRange(ctx, todayStart, todayEnd)
}

// FetchHistorical fetches entries in [from, to) in bounded chunks.
func (c *Client) FetchHistorical(ctx context.Context, from, to time.Time) ([]model.RawEntry, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	entries := make([]model.RawEntry, 0)
	for chunkStart := from; chunkStart.Before(to); {
		chunkEnd := chunkStart.AddDate(0, 0, maxChunkDays)
		if chunkEnd.After(to) {
			chunkEnd = to
		}

		chunk, err := c.fetchRange(ctx, chunkStart, chunkEnd)
		if err != nil {
			return nil, err
		}
		entries = append(entries, chunk...)

		chunkStart = chunkEnd
	}

	return entries, nil
}

// fetchRange performs one GET /me/time_entries call with retries.
func (c *Client) fetchRange(ctx context.Context, from, to time.Time) ([]model.RawEntry, error) {
	query := url.Values{}
	query.Set("start_date", from.UTC().Format(time.RFC3339))
	query.Set("end_date", to.UTC().Format(time.RFC3339))
	endpoint := fmt.Sprintf("%s/me/time_entries?%s", c.baseURL, query.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		entries, err := c.doFetch(ctx, endpoint)
		if err == nil {
			return entries, nil
		}
		lastErr = err

		if !retryable(err) {
			return nil, err
		}

		util.LogWarnf("Toggl fetch attempt %d/%d failed: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}
	}

	return nil, lastErr
}

func (c *Client) doFetch(ctx context.Context, endpoint string) ([]model.RawEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.token, "api_token")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var entries []model.RawEntry
	if err := sonic.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse time entries: %w", err)
	}

	return c.localize(entries), nil
}

// localize re-renders entry timestamps in the configured timezone, the way
// the upstream contract promises them. Unparseable timestamps pass through
// untouched; validation drops them later.
func (c *Client) localize(entries []model.RawEntry) []model.RawEntry {
	out := make([]model.RawEntry, 0, len(entries))
	for _, entry := range entries {
		if start, err := time.Parse(time.RFC3339, entry.Start); err == nil {
			entry.Start = start.In(c.loc).Format(time.RFC3339)
		}
		if entry.Stop != nil {
			if stop, err := time.Parse(time.RFC3339, *entry.Stop); err == nil {
				localized := stop.In(c.loc).Format(time.RFC3339)
				entry.Stop = &localized
			}
		}
		out = append(out, entry)
	}
	return out
}

// retryable reports whether an error is worth another attempt: transport
// failures and 5xx responses are, client errors are not.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
