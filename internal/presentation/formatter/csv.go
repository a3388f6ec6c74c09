package formatter

import (
	"encoding/csv"
	"fmt"
	"os"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(data []DaySummary) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	headers := []string{
		"Date", "Sessions", "Gaps", "Worked Hours",
		"First Start", "Last End", "Work/Elapsed (%)",
	}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, day := range data {
		record := []string{
			day.Date,
			fmt.Sprintf("%d", day.Sessions),
			fmt.Sprintf("%d", day.Gaps),
			fmt.Sprintf("%.2f", day.WorkedHours),
			day.FirstStart,
			day.LastEnd,
			fmt.Sprintf("%.1f", day.Percent),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
