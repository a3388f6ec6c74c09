package model

import (
	"errors"
	"fmt"
	"time"
)

// RawEntry is a single time entry as the Toggl v9 API returns it. Stop is
// nil for the one entry that may still be running.
type RawEntry struct {
	ID    int64   `json:"id"`
	Start string  `json:"start"`
	Stop  *string `json:"stop"`
}

// Payload is the top-level structure exchanged with the chart page: today's
// entries plus a window of historical ones.
type Payload struct {
	Today      []RawEntry `json:"today"`
	Historical []RawEntry `json:"historical"`
}

// Entry is a validated time entry with parsed timestamps. A nil Stop means
// the entry is still running.
type Entry struct {
	ID    int64
	Start time.Time
	Stop  *time.Time
}

var (
	ErrMissingStart    = errors.New("entry has no start timestamp")
	ErrStopBeforeStart = errors.New("entry stop precedes start")
)

// Validate parses a raw entry into an Entry. Records that fail validation
// are reported with a typed error so callers can drop them as a data-quality
// filter rather than a failure.
func Validate(raw RawEntry) (Entry, error) {
	if raw.Start == "" {
		return Entry{}, ErrMissingStart
	}

	start, err := time.Parse(time.RFC3339, raw.Start)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid start timestamp %q: %w", raw.Start, err)
	}

	entry := Entry{ID: raw.ID, Start: start}

	if raw.Stop != nil && *raw.Stop != "" {
		stop, err := time.Parse(time.RFC3339, *raw.Stop)
		if err != nil {
			return Entry{}, fmt.Errorf("invalid stop timestamp %q: %w", *raw.Stop, err)
		}
		if stop.Before(start) {
			return Entry{}, ErrStopBeforeStart
		}
		entry.Stop = &stop
	}

	return entry, nil
}

// ValidateAll validates a batch of raw entries, returning the valid ones in
// input order and the number of records dropped.
func ValidateAll(raws []RawEntry) ([]Entry, int) {
	entries := make([]Entry, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		entry, err := Validate(raw)
		if err != nil {
			dropped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, dropped
}

// IsRunning reports whether the entry has no stop timestamp yet.
func (e Entry) IsRunning() bool {
	return e.Stop == nil
}

// Duration returns the entry's length, or zero for a running entry.
func (e Entry) Duration() time.Duration {
	if e.Stop == nil {
		return 0
	}
	return e.Stop.Sub(e.Start)
}
