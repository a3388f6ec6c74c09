package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"togglpace/internal/core/model"
)

func TestNormalizeFiltersAndClips(t *testing.T) {
	loc := testLocation(t)
	builder := NewBuilder(loc, 6, 22)

	date := localTime(t, loc, "2026-08-10 00:00")
	now := localTime(t, loc, "2026-08-31 12:00")
	window := builder.Window(date, now)

	entries := []model.Entry{
		// Running entry, dropped.
		entryAt(t, loc, 1, "2026-08-10 09:00", ""),
		// Wrong day, dropped.
		entryAt(t, loc, 2, "2026-08-11 09:00", "2026-08-11 10:00"),
		// Starts before the window, clipped to 06:00.
		entryAt(t, loc, 3, "2026-08-10 05:00", "2026-08-10 07:00"),
		// Fully inside.
		entryAt(t, loc, 4, "2026-08-10 10:00", "2026-08-10 12:00"),
		// Entirely after the window, clips to nothing.
		entryAt(t, loc, 5, "2026-08-10 22:30", "2026-08-10 23:00"),
	}

	intervals := builder.Normalize(entries, date, window)
	require.Len(t, intervals, 2)

	first := intervals[0]
	assert.Equal(t, window.Start, first.Start)
	assert.Equal(t, localTime(t, loc, "2026-08-10 05:00"), first.RawStart)
	assert.InDelta(t, 1.0, first.Hours(), 1e-9)

	second := intervals[1]
	assert.InDelta(t, 2.0, second.Hours(), 1e-9)
	assert.Equal(t, second.Start, second.RawStart)
}

func TestNormalizeSortsByStart(t *testing.T) {
	loc := testLocation(t)
	builder := NewBuilder(loc, 6, 22)

	date := localTime(t, loc, "2026-08-10 00:00")
	now := localTime(t, loc, "2026-08-31 12:00")
	window := builder.Window(date, now)

	entries := []model.Entry{
		entryAt(t, loc, 2, "2026-08-10 14:00", "2026-08-10 15:00"),
		entryAt(t, loc, 1, "2026-08-10 08:00", "2026-08-10 09:00"),
		entryAt(t, loc, 3, "2026-08-10 11:00", "2026-08-10 11:30"),
	}

	intervals := builder.Normalize(entries, date, window)
	require.Len(t, intervals, 3)
	for i := 1; i < len(intervals); i++ {
		assert.False(t, intervals[i].Start.Before(intervals[i-1].Start))
	}
}

func TestNormalizeClampsToLiveEnd(t *testing.T) {
	loc := testLocation(t)
	builder := NewBuilder(loc, 6, 22)

	// Today with now at 10:00: an entry recorded past now clips to now.
	now := localTime(t, loc, "2026-08-31 10:00")
	date := localTime(t, loc, "2026-08-31 00:00")
	window := builder.Window(date, now)

	stop := localTime(t, loc, "2026-08-31 11:00")
	entries := []model.Entry{
		{ID: 1, Start: localTime(t, loc, "2026-08-31 09:00"), Stop: &stop},
	}

	intervals := builder.Normalize(entries, date, window)
	require.Len(t, intervals, 1)
	assert.Equal(t, now, intervals[0].End)
	assert.InDelta(t, 1.0, intervals[0].Hours(), 1e-9)
}

func TestClippedIntervalHours(t *testing.T) {
	loc := testLocation(t)
	interval := ClippedInterval{
		Start: localTime(t, loc, "2026-08-10 09:00"),
		End:   localTime(t, loc, "2026-08-10 11:45"),
	}
	assert.InDelta(t, 2.75, interval.Hours(), 1e-9)
}
