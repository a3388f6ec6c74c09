package util

import (
	"fmt"
	"math"
	"time"
)

// Helper functions

// FormatHours renders a fractional hour count as "7h 30m".
func FormatHours(hours float64) string {
	if hours < 0 {
		hours = 0
	}
	totalMinutes := int(math.Round(hours * 60))
	h := totalMinutes / 60
	m := totalMinutes % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatPercent renders a work/elapsed percentage with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDuration renders a duration as "7h 30m" or "45m".
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
