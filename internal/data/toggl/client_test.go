package toggl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"togglpace/internal/core/model"
)

func testServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestFetchTodaySendsBasicAuth(t *testing.T) {
	var gotUser, gotPass string
	var gotStart, gotEnd string

	server := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		gotStart = r.URL.Query().Get("start_date")
		gotEnd = r.URL.Query().Get("end_date")
		w.Write([]byte(`[]`))
	})

	client := NewClientWithBaseURL("secret-token", server.URL, time.UTC)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	entries, err := client.FetchToday(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Equal(t, "secret-token", gotUser)
	assert.Equal(t, "api_token", gotPass)
	assert.Equal(t, "2026-08-31T00:00:00Z", gotStart)
	assert.Equal(t, "2026-09-01T00:00:00Z", gotEnd)
}

func TestFetchTodayRequiresToken(t *testing.T) {
	client := NewClient("", time.UTC)
	_, err := client.FetchToday(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestFetchHistoricalChunks(t *testing.T) {
	var calls int32
	server := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`[{"id": 1, "start": "2026-06-10T09:00:00Z", "stop": "2026-06-10T10:00:00Z"}]`))
	})

	client := NewClientWithBaseURL("token", server.URL, time.UTC)
	from := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 90)

	entries, err := client.FetchHistorical(context.Background(), from, to)
	require.NoError(t, err)

	// 90 days at 30 per chunk.
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Len(t, entries, 3)
}

func TestFetchRetriesOnServerError(t *testing.T) {
	var calls int32
	server := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"id": 7, "start": "2026-08-31T09:00:00Z", "stop": null}]`))
	})

	client := NewClientWithBaseURL("token", server.URL, time.UTC)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	entries, err := client.FetchToday(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(7), entries[0].ID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`invalid credentials`))
	})

	client := NewClientWithBaseURL("token", server.URL, time.UTC)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	_, err := client.FetchToday(context.Background(), now)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchLocalizesTimestamps(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	server := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "start": "2026-08-31T16:00:00Z", "stop": "2026-08-31T17:00:00Z"}]`))
	})

	client := NewClientWithBaseURL("token", server.URL, loc)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, loc)

	entries, err := client.FetchToday(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "2026-08-31T09:00:00-07:00", entries[0].Start)
	require.NotNil(t, entries[0].Stop)
	assert.Equal(t, "2026-08-31T10:00:00-07:00", *entries[0].Stop)
}

func TestFetchPayloadShape(t *testing.T) {
	server := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	client := NewClientWithBaseURL("token", server.URL, time.UTC)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	payload, err := client.FetchPayload(context.Background(), now, 5)
	require.NoError(t, err)
	assert.Equal(t, model.Payload{Today: []model.RawEntry{}, Historical: []model.RawEntry{}}, payload)
}
