package trajectory

import "time"

// DayWindow bounds one local working day. Start and End sit at the
// configured wall-clock hours; ClampedEnd equals End for past days and
// min(now, End) for the day containing now.
type DayWindow struct {
	Start      time.Time
	End        time.Time
	ClampedEnd time.Time
}

// NewDayWindow computes the work-hour bounds for the local day containing
// date. The hours are wall-clock hours in loc, so the bounds stay at the
// configured clock times across daylight-saving transitions.
func NewDayWindow(date time.Time, loc *time.Location, startHour, endHour int, now time.Time) DayWindow {
	local := date.In(loc)
	year, month, day := local.Date()

	window := DayWindow{
		Start: time.Date(year, month, day, startHour, 0, 0, 0, loc),
		End:   time.Date(year, month, day, endHour, 0, 0, 0, loc),
	}

	window.ClampedEnd = window.End
	nowLocal := now.In(loc)
	if sameLocalDay(local, nowLocal) && nowLocal.Before(window.End) {
		window.ClampedEnd = nowLocal
	}

	return window
}

// Hours returns the full window length in hours, ignoring the clamp.
func (w DayWindow) Hours() float64 {
	return w.End.Sub(w.Start).Hours()
}

func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
