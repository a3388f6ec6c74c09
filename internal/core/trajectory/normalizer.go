package trajectory

import (
	"sort"
	"time"

	"togglpace/internal/core/model"
)

// ClippedInterval is a completed entry restricted to the day window. The
// raw timestamps are kept for the HH:MM labels shown in tooltips.
type ClippedInterval struct {
	Start    time.Time
	End      time.Time
	RawStart time.Time
	RawStop  time.Time
}

// Hours returns the clipped duration in hours.
func (ci ClippedInterval) Hours() float64 {
	return ci.End.Sub(ci.Start).Hours()
}

// Normalize filters the day's completed entries and clips them to the
// window. Entries whose local start date does not match date, running
// entries, and intervals that clip down to nothing are dropped. The result
// is ordered by clipped start; ties keep their input order.
func (b *Builder) Normalize(entries []model.Entry, date time.Time, window DayWindow) []ClippedInterval {
	target := date.In(b.loc)

	completed := make([]model.Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Stop == nil {
			continue
		}
		if !sameLocalDay(entry.Start.In(b.loc), target) {
			continue
		}
		completed = append(completed, entry)
	}

	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].Start.Before(completed[j].Start)
	})

	intervals := make([]ClippedInterval, 0, len(completed))
	for _, entry := range completed {
		start := entry.Start
		if start.Before(window.Start) {
			start = window.Start
		}
		end := *entry.Stop
		if end.After(window.ClampedEnd) {
			end = window.ClampedEnd
		}
		if !end.After(start) {
			continue
		}
		intervals = append(intervals, ClippedInterval{
			Start:    start,
			End:      end,
			RawStart: entry.Start,
			RawStop:  *entry.Stop,
		})
	}

	return intervals
}
