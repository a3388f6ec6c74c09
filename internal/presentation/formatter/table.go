package formatter

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"togglpace/internal/util"
)

type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{
			"Date", "Sessions", "Gaps", "Worked", "Span", "Work/Elapsed",
		},
	}
}

func (f *TableFormatter) Format(data []DaySummary) error {
	rows := make([][]string, 0, len(data))
	var totalWorked float64
	totalSessions := 0

	for _, day := range data {
		rows = append(rows, []string{
			day.Date,
			fmt.Sprintf("%d", day.Sessions),
			fmt.Sprintf("%d", day.Gaps),
			util.FormatHours(day.WorkedHours),
			formatSpan(day),
			util.FormatPercent(day.Percent),
		})
		totalWorked += day.WorkedHours
		totalSessions += day.Sessions
	}

	totalRow := []string{
		"Total",
		fmt.Sprintf("%d", totalSessions),
		"",
		util.FormatHours(totalWorked),
		"",
		"",
	}

	widths := f.columnWidths(rows, totalRow)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		f.printRow(row, widths)
	}
	f.printBorder(widths, "middle")
	f.printRow(totalRow, widths)
	f.printBorder(widths, "bottom")

	return nil
}

// formatSpan renders the day's first-start to last-end range, with the
// running sentinel passed through for a day still in progress.
func formatSpan(day DaySummary) string {
	if day.FirstStart == "" && day.LastEnd == "" {
		return "-"
	}
	if day.FirstStart == "" {
		return day.LastEnd
	}
	if day.LastEnd == "" {
		return day.FirstStart
	}
	return day.FirstStart + " - " + day.LastEnd
}

// columnWidths sizes each column to its widest cell. Widths are display
// widths, not byte counts.
func (f *TableFormatter) columnWidths(rows [][]string, extra ...[]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = runewidth.StringWidth(header)
	}

	measure := func(row []string) {
		for i, value := range row {
			if w := runewidth.StringWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for _, row := range rows {
		measure(row)
	}
	for _, row := range extra {
		measure(row)
	}

	return widths
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	fmt.Print(left)
	for i, width := range widths {
		fmt.Print(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			fmt.Print(middle)
		}
	}
	fmt.Println(right)
}

func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Print("│")
	for i, value := range values {
		padding := widths[i] - runewidth.StringWidth(value)
		if i == 0 || i == 4 {
			// Date and Span are left-aligned, numeric columns right-aligned
			fmt.Printf(" %s%s │", value, strings.Repeat(" ", padding))
		} else {
			fmt.Printf(" %s%s │", strings.Repeat(" ", padding), value)
		}
	}
	fmt.Println()
}
