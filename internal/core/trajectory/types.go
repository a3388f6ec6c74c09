package trajectory

// PointKind classifies a trajectory point. The chart page branches its
// tooltip and marker treatment on this value instead of probing for
// optional fields.
type PointKind string

const (
	// KindInitial marks the first session start of the day (y is always 0).
	KindInitial PointKind = "initial"
	// KindSessionEnd marks the end of a completed work session.
	KindSessionEnd PointKind = "session"
	// KindGap marks the start of an idle stretch; the percentage dips here
	// because elapsed time grew while worked time did not.
	KindGap PointKind = "gap"
	// KindCurrent marks the current moment on a day still in progress.
	KindCurrent PointKind = "current"
	// KindOngoingEnd marks the accrued end of a session that is still
	// running; its end label is RunningLabel, not a timestamp.
	KindOngoingEnd PointKind = "ongoing"
)

// RunningLabel is the sentinel end label for a session still in progress.
const RunningLabel = "now"

// Point is one sample of the work-time-over-elapsed-time trajectory.
// X is the local hour of day, Y the percentage of elapsed time spent
// working. Y is not capped at 100: a dense burst of logged work early in
// the elapsed span can push it above.
type Point struct {
	X              float64   `json:"x"`
	Y              float64   `json:"y"`
	Duration       float64   `json:"duration"`
	StartLabel     string    `json:"startTime"`
	EndLabel       string    `json:"endTime"`
	Date           string    `json:"date"`
	CumulativeWork float64   `json:"cumulative"`
	ElapsedHours   float64   `json:"elapsed"`
	Kind           PointKind `json:"kind"`
}
