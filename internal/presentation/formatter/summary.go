package formatter

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"togglpace/internal/util"
)

// SummaryFormatter prints an aggregate report across the whole range.
type SummaryFormatter struct{}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Format formats and outputs the aggregate summary of the day range.
func (f *SummaryFormatter) Format(data []DaySummary) error {
	width := separatorWidth()
	rule := strings.Repeat("=", width)

	fmt.Println(rule)
	fmt.Println("Work Pace Summary")
	fmt.Println(rule)
	fmt.Println()

	if len(data) == 0 {
		fmt.Println("No data to summarize")
		fmt.Println()
		fmt.Println(rule)
		return nil
	}

	firstDate := data[0].Date
	lastDate := data[len(data)-1].Date
	if firstDate == lastDate {
		fmt.Printf("Date Range: %s\n", firstDate)
	} else {
		fmt.Printf("Date Range: %s to %s\n", firstDate, lastDate)
	}
	fmt.Println()

	var totalWorked, totalElapsed float64
	totalSessions := 0
	totalGaps := 0
	activeDays := 0
	var busiest DaySummary

	for _, day := range data {
		totalWorked += day.WorkedHours
		totalElapsed += day.ElapsedHours
		totalSessions += day.Sessions
		totalGaps += day.Gaps
		if day.Sessions > 0 {
			activeDays++
		}
		if day.WorkedHours > busiest.WorkedHours {
			busiest = day
		}
	}

	fmt.Println("Totals:")
	fmt.Printf("  Worked: %s across %d sessions\n", util.FormatHours(totalWorked), totalSessions)
	fmt.Printf("  Active Days: %d of %d\n", activeDays, len(data))
	fmt.Printf("  Gaps: %d\n", totalGaps)
	if totalElapsed > 0 {
		fmt.Printf("  Overall Work/Elapsed: %s\n", util.FormatPercent(totalWorked/totalElapsed*100))
	}
	fmt.Println()

	if activeDays > 0 {
		fmt.Println("Averages (active days):")
		fmt.Printf("  Worked per Day: %s\n", util.FormatHours(totalWorked/float64(activeDays)))
		fmt.Printf("  Sessions per Day: %.1f\n", float64(totalSessions)/float64(activeDays))
		fmt.Println()

		fmt.Printf("Busiest Day: %s (%s, %d sessions)\n",
			busiest.Date, util.FormatHours(busiest.WorkedHours), busiest.Sessions)
		fmt.Println()
	}

	fmt.Println(rule)
	return nil
}

// separatorWidth matches the rule lines to the terminal, falling back to a
// fixed width when stdout is not a terminal.
func separatorWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || width > 60 {
		return 60
	}
	return width
}
