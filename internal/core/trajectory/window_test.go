package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDayWindowPastDay(t *testing.T) {
	loc := testLocation(t)

	date := localTime(t, loc, "2026-08-10 00:00")
	now := localTime(t, loc, "2026-08-31 12:00")

	window := NewDayWindow(date, loc, 6, 22, now)

	assert.Equal(t, 6, window.Start.Hour())
	assert.Equal(t, 22, window.End.Hour())
	assert.Equal(t, window.End, window.ClampedEnd)
	assert.InDelta(t, 16.0, window.Hours(), 1e-9)
}

func TestNewDayWindowClampsToNow(t *testing.T) {
	loc := testLocation(t)

	now := localTime(t, loc, "2026-08-31 10:30")
	date := localTime(t, loc, "2026-08-31 00:00")

	window := NewDayWindow(date, loc, 6, 22, now)
	assert.Equal(t, now, window.ClampedEnd)
}

func TestNewDayWindowTodayAfterEnd(t *testing.T) {
	loc := testLocation(t)

	now := localTime(t, loc, "2026-08-31 23:15")
	date := localTime(t, loc, "2026-08-31 00:00")

	window := NewDayWindow(date, loc, 6, 22, now)
	assert.Equal(t, window.End, window.ClampedEnd)
}

func TestNewDayWindowDSTSpringForward(t *testing.T) {
	loc := testLocation(t)

	// 2026-03-08 loses an hour in America/Los_Angeles. The bounds stay at
	// the configured wall-clock hours; the lost hour falls at 02:00, before
	// a 06:00 window opens, so the span stays 16 hours.
	date := localTime(t, loc, "2026-03-08 00:00")
	now := localTime(t, loc, "2026-08-31 12:00")

	window := NewDayWindow(date, loc, 6, 22, now)
	require.Equal(t, 6, window.Start.Hour())
	require.Equal(t, 22, window.End.Hour())
	assert.InDelta(t, 16.0, window.Hours(), 1e-9)

	// A window spanning the transition does shrink.
	full := NewDayWindow(date, loc, 0, 24, now)
	assert.InDelta(t, 23.0, full.Hours(), 1e-9)
}

func TestNewDayWindowMidnightToMidnight(t *testing.T) {
	loc := testLocation(t)

	date := localTime(t, loc, "2026-08-10 00:00")
	now := localTime(t, loc, "2026-08-31 12:00")

	window := NewDayWindow(date, loc, 0, 24, now)
	assert.Equal(t, 0, window.Start.Hour())
	assert.InDelta(t, 24.0, window.Hours(), 1e-9)
}
