package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"togglpace/internal/config"
	"togglpace/internal/core/model"
	"togglpace/internal/core/trajectory"
	"togglpace/internal/data/cache"
	"togglpace/internal/data/source"
)

func strPtr(s string) *string { return &s }

func testReporter(t *testing.T) *Reporter {
	t.Helper()
	cfg := config.Default()
	cfg.Timezone = "UTC"
	loc, err := cfg.Location()
	require.NoError(t, err)

	return &Reporter{
		cfg:     cfg,
		builder: trajectory.NewBuilder(loc, cfg.StartHour, cfg.EndHour),
		loc:     loc,
	}
}

func TestSummarizeOrdersDaysOldestFirst(t *testing.T) {
	r := testReporter(t)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	payload := model.Payload{
		Historical: []model.RawEntry{
			{ID: 2, Start: "2026-08-12T09:00:00Z", Stop: strPtr("2026-08-12T10:00:00Z")},
			{ID: 1, Start: "2026-08-10T09:00:00Z", Stop: strPtr("2026-08-10T10:00:00Z")},
		},
		Today: []model.RawEntry{
			{ID: 3, Start: "2026-08-31T09:00:00Z", Stop: strPtr("2026-08-31T11:00:00Z")},
		},
	}

	summaries := r.Summarize(payload, now)
	require.Len(t, summaries, 3)

	assert.Equal(t, "2026-08-10", summaries[0].Date)
	assert.Equal(t, "2026-08-12", summaries[1].Date)
	assert.Equal(t, "2026-08-31", summaries[2].Date)
	assert.InDelta(t, 2.0, summaries[2].WorkedHours, 1e-9)
}

func TestSummarizeMergesTodayBucketWithLiveEntries(t *testing.T) {
	r := testReporter(t)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	// The historical list can include today's completed entries when the
	// fetch window overlaps; they merge with the live list, not duplicate
	// the day.
	payload := model.Payload{
		Historical: []model.RawEntry{
			{ID: 1, Start: "2026-08-31T06:00:00Z", Stop: strPtr("2026-08-31T07:00:00Z")},
		},
		Today: []model.RawEntry{
			{ID: 2, Start: "2026-08-31T08:00:00Z", Stop: strPtr("2026-08-31T09:00:00Z")},
		},
	}

	summaries := r.Summarize(payload, now)
	require.Len(t, summaries, 1)
	assert.Equal(t, "2026-08-31", summaries[0].Date)
	assert.Equal(t, 2, summaries[0].Sessions)
	assert.InDelta(t, 2.0, summaries[0].WorkedHours, 1e-9)
}

func TestSummarizeEmptyPayloadStillReportsToday(t *testing.T) {
	r := testReporter(t)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	summaries := r.Summarize(model.Payload{}, now)
	require.Len(t, summaries, 1)
	assert.Equal(t, "2026-08-31", summaries[0].Date)
	assert.Zero(t, summaries[0].Sessions)
}

func TestSummarizeSkipsMalformedEntries(t *testing.T) {
	r := testReporter(t)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	payload := model.Payload{
		Historical: []model.RawEntry{
			{ID: 1, Start: "broken"},
			{ID: 2, Start: "2026-08-10T09:00:00Z", Stop: strPtr("2026-08-10T10:00:00Z")},
		},
	}

	summaries := r.Summarize(payload, now)
	require.Len(t, summaries, 2)
	assert.Equal(t, "2026-08-10", summaries[0].Date)
	assert.Equal(t, 1, summaries[0].Sessions)
}

func TestNewWiresFileSource(t *testing.T) {
	path := writeEntriesFile(t)

	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.CacheDir = t.TempDir()

	r, err := New(cfg, Options{EntriesFile: path, OutputFormat: "json"})
	require.NoError(t, err)

	_, ok := r.source.(*source.FileSource)
	assert.True(t, ok)
	assert.Nil(t, r.dayCache)
}

func TestNewWiresTogglSourceWithCache(t *testing.T) {
	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.CacheDir = t.TempDir()
	cfg.APIToken = "token"

	r, err := New(cfg, Options{OutputFormat: "table"})
	require.NoError(t, err)

	_, ok := r.source.(*source.TogglSource)
	assert.True(t, ok)
	require.NotNil(t, r.dayCache)
	assert.IsType(t, &cache.DayCache{}, r.dayCache)
}

func TestRunWithFileSource(t *testing.T) {
	path := writeEntriesFile(t)

	cfg := config.Default()
	cfg.Timezone = "UTC"

	r, err := New(cfg, Options{EntriesFile: path, OutputFormat: "json"})
	require.NoError(t, err)

	assert.NoError(t, r.Run(context.Background()))
}

func writeEntriesFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entries.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"today": [], "historical": []}`), 0644))
	return path
}
