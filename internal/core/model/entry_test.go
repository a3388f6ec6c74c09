package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawEntry
		wantErr error
		running bool
	}{
		{
			name:    "completed entry",
			raw:     RawEntry{ID: 1, Start: "2026-08-10T09:00:00-07:00", Stop: strPtr("2026-08-10T10:30:00-07:00")},
			running: false,
		},
		{
			name:    "running entry",
			raw:     RawEntry{ID: 2, Start: "2026-08-10T09:00:00-07:00"},
			running: true,
		},
		{
			name:    "empty stop treated as running",
			raw:     RawEntry{ID: 3, Start: "2026-08-10T09:00:00-07:00", Stop: strPtr("")},
			running: true,
		},
		{
			name:    "missing start",
			raw:     RawEntry{ID: 4},
			wantErr: ErrMissingStart,
		},
		{
			name:    "stop before start",
			raw:     RawEntry{ID: 5, Start: "2026-08-10T10:00:00-07:00", Stop: strPtr("2026-08-10T09:00:00-07:00")},
			wantErr: ErrStopBeforeStart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := Validate(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw.ID, entry.ID)
			assert.Equal(t, tt.running, entry.IsRunning())
		})
	}
}

func TestValidateRejectsMalformedTimestamps(t *testing.T) {
	_, err := Validate(RawEntry{ID: 1, Start: "not-a-time"})
	assert.Error(t, err)

	_, err = Validate(RawEntry{ID: 2, Start: "2026-08-10T09:00:00-07:00", Stop: strPtr("later")})
	assert.Error(t, err)
}

func TestValidateAll(t *testing.T) {
	raws := []RawEntry{
		{ID: 1, Start: "2026-08-10T09:00:00-07:00", Stop: strPtr("2026-08-10T10:00:00-07:00")},
		{ID: 2},
		{ID: 3, Start: "garbage"},
		{ID: 4, Start: "2026-08-10T11:00:00-07:00"},
	}

	entries, dropped := ValidateAll(raws)
	assert.Equal(t, 2, dropped)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].ID)
	assert.Equal(t, int64(4), entries[1].ID)
}

func TestEntryDuration(t *testing.T) {
	start := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	stop := start.Add(90 * time.Minute)

	completed := Entry{ID: 1, Start: start, Stop: &stop}
	assert.Equal(t, 90*time.Minute, completed.Duration())

	running := Entry{ID: 2, Start: start}
	assert.Zero(t, running.Duration())
}
