package formatter

import "togglpace/internal/core/trajectory"

// DaySummary condenses one day's trajectory for terminal output. Points
// carries the full point sequence for the JSON format; the table and CSV
// formats ignore it.
type DaySummary struct {
	Date         string             `json:"date"`
	Sessions     int                `json:"sessions"`
	Gaps         int                `json:"gaps"`
	WorkedHours  float64            `json:"workedHours"`
	ElapsedHours float64            `json:"elapsedHours"`
	FirstStart   string             `json:"firstStart,omitempty"`
	LastEnd      string             `json:"lastEnd,omitempty"`
	Percent      float64            `json:"percent"`
	Ongoing      bool               `json:"ongoing"`
	Points       []trajectory.Point `json:"points,omitempty"`
}

// Formatter renders day summaries to stdout.
type Formatter interface {
	Format(data []DaySummary) error
}

// New returns the formatter for an output format name, defaulting to the
// table.
func New(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	case "csv":
		return NewCSVFormatter()
	case "summary":
		return NewSummaryFormatter()
	default:
		return NewTableFormatter()
	}
}

// Summarize reduces one day's ordered point sequence to a DaySummary.
func Summarize(date string, points []trajectory.Point) DaySummary {
	summary := DaySummary{Date: date, Points: points}

	for _, point := range points {
		switch point.Kind {
		case trajectory.KindInitial:
			summary.FirstStart = point.StartLabel
		case trajectory.KindSessionEnd:
			summary.Sessions++
			summary.LastEnd = point.EndLabel
		case trajectory.KindGap:
			summary.Gaps++
		case trajectory.KindOngoingEnd:
			summary.Sessions++
			summary.LastEnd = point.EndLabel
			summary.Ongoing = true
		}
	}

	if len(points) > 0 {
		last := points[len(points)-1]
		summary.WorkedHours = last.CumulativeWork
		summary.ElapsedHours = last.ElapsedHours
		summary.Percent = last.Y
	}

	return summary
}
