package trajectory

import (
	"time"

	"togglpace/internal/core/model"
	"togglpace/internal/util"
)

// Builder derives per-day work-pace trajectories from validated time
// entries. The timezone and work-hour bounds are fixed configuration; the
// current moment is threaded through every call so the transform stays
// deterministic under test.
type Builder struct {
	loc       *time.Location
	startHour int
	endHour   int
}

// NewBuilder creates a Builder for the given timezone and work window.
func NewBuilder(loc *time.Location, startHour, endHour int) *Builder {
	return &Builder{
		loc:       loc,
		startHour: startHour,
		endHour:   endHour,
	}
}

// Location returns the builder's configured timezone.
func (b *Builder) Location() *time.Location {
	return b.loc
}

// WindowHours returns the configured work-hour bounds.
func (b *Builder) WindowHours() (int, int) {
	return b.startHour, b.endHour
}

// Window computes the day window for the local day containing date.
func (b *Builder) Window(date, now time.Time) DayWindow {
	return NewDayWindow(date, b.loc, b.startHour, b.endHour, now)
}

// BuildDay converts one day's entries into an ordered trajectory. A day
// with no qualifying entries yields an empty slice. Today-only logic (the
// ongoing session and the current-moment marker) activates only when date
// and now fall on the same local day.
func (b *Builder) BuildDay(entries []model.Entry, date, now time.Time) []Point {
	window := b.Window(date, now)
	today := sameLocalDay(date.In(b.loc), now.In(b.loc))

	var ongoing *model.Entry
	if today {
		for i := range entries {
			if entries[i].Stop == nil && sameLocalDay(entries[i].Start.In(b.loc), date.In(b.loc)) {
				ongoing = &entries[i]
				break
			}
		}
	}

	intervals := b.Normalize(entries, date, window)
	return b.trajectory(intervals, ongoing, window, now, today)
}

// trajectory is the single-pass core: it walks the clipped, sorted
// intervals accumulating worked hours and emits the ordered point sequence.
func (b *Builder) trajectory(intervals []ClippedInterval, ongoing *model.Entry, window DayWindow, now time.Time, today bool) []Point {
	date := window.Start.Format("2006-01-02")

	var points []Point
	cumulative := 0.0
	var lastEnd *time.Time

	// Initial point at the earliest raw start of any session, including the
	// ongoing one. A session that began before the window produces no
	// initial point; its session-end point still appears.
	if first, ok := b.firstStart(intervals, ongoing); ok {
		hour := b.hourOf(first)
		if hour >= float64(b.startHour) && hour <= float64(b.endHour) {
			points = append(points, Point{
				X:            hour,
				Y:            0,
				StartLabel:   b.clock(first),
				EndLabel:     b.clock(first),
				Date:         date,
				ElapsedHours: b.elapsed(window, first),
				Kind:         KindInitial,
			})
		}
	}

	for _, interval := range intervals {
		if lastEnd != nil && interval.Start.After(*lastEnd) {
			points = append(points, b.gapPoint(interval.Start, interval.RawStart, window, cumulative, date))
		}

		cumulative += interval.Hours()
		elapsed := b.elapsed(window, interval.End)
		points = append(points, Point{
			X:              b.hourOf(interval.End),
			Y:              percentage(cumulative, elapsed),
			Duration:       interval.Hours(),
			StartLabel:     b.clock(interval.RawStart),
			EndLabel:       b.clock(interval.RawStop),
			Date:           date,
			CumulativeWork: cumulative,
			ElapsedHours:   elapsed,
			Kind:           KindSessionEnd,
		})

		end := interval.End
		lastEnd = &end
	}

	if today && ongoing != nil {
		points, cumulative = b.ongoingPoints(points, ongoing, window, cumulative, lastEnd, date)
	} else if today {
		// No session is running: mark the current moment instead, so the
		// day's line still ends at now.
		hour := b.hourOf(now)
		if hour >= float64(b.startHour) && hour <= float64(b.endHour) {
			elapsed := b.elapsed(window, now)
			points = append(points, Point{
				X:              hour,
				Y:              percentage(cumulative, elapsed),
				StartLabel:     b.clock(now),
				EndLabel:       b.clock(now),
				Date:           date,
				CumulativeWork: cumulative,
				ElapsedHours:   elapsed,
				Kind:           KindCurrent,
			})
		}
	}

	return points
}

// ongoingPoints accrues the still-running session and appends its gap and
// ongoing-end points. The end label is the running sentinel rather than a
// timestamp.
func (b *Builder) ongoingPoints(points []Point, ongoing *model.Entry, window DayWindow, cumulative float64, lastEnd *time.Time, date string) ([]Point, float64) {
	start := ongoing.Start
	if start.Before(window.Start) {
		start = window.Start
	}

	if lastEnd != nil && start.After(*lastEnd) {
		points = append(points, b.gapPoint(start, ongoing.Start, window, cumulative, date))
	}

	duration := window.ClampedEnd.Sub(start).Hours()
	if duration <= 0 {
		util.LogDebugf("Ongoing entry %d outside the work window, skipped", ongoing.ID)
		return points, cumulative
	}

	cumulative += duration
	elapsed := b.elapsed(window, window.ClampedEnd)
	points = append(points, Point{
		X:              b.hourOf(window.ClampedEnd),
		Y:              percentage(cumulative, elapsed),
		Duration:       duration,
		StartLabel:     b.clock(ongoing.Start),
		EndLabel:       RunningLabel,
		Date:           date,
		CumulativeWork: cumulative,
		ElapsedHours:   elapsed,
		Kind:           KindOngoingEnd,
	})

	return points, cumulative
}

// gapPoint marks the start of an idle stretch with the pre-accrual
// cumulative work, which makes the percentage visibly dip.
func (b *Builder) gapPoint(at, rawStart time.Time, window DayWindow, cumulative float64, date string) Point {
	elapsed := b.elapsed(window, at)
	return Point{
		X:              b.hourOf(at),
		Y:              percentage(cumulative, elapsed),
		StartLabel:     b.clock(rawStart),
		EndLabel:       b.clock(rawStart),
		Date:           date,
		CumulativeWork: cumulative,
		ElapsedHours:   elapsed,
		Kind:           KindGap,
	}
}

// firstStart returns the earliest raw start among the clipped intervals and
// the ongoing entry, if any.
func (b *Builder) firstStart(intervals []ClippedInterval, ongoing *model.Entry) (time.Time, bool) {
	var first time.Time
	found := false

	for _, interval := range intervals {
		if !found || interval.RawStart.Before(first) {
			first = interval.RawStart
			found = true
		}
	}
	if ongoing != nil {
		if !found || ongoing.Start.Before(first) {
			first = ongoing.Start
			found = true
		}
	}

	return first, found
}

func (b *Builder) hourOf(t time.Time) float64 {
	local := t.In(b.loc)
	return float64(local.Hour()) + float64(local.Minute())/60 + float64(local.Second())/3600
}

func (b *Builder) elapsed(window DayWindow, t time.Time) float64 {
	return t.Sub(window.Start).Hours()
}

func (b *Builder) clock(t time.Time) string {
	return t.In(b.loc).Format("15:04")
}

func percentage(cumulative, elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	return cumulative / elapsed * 100
}
