package commands

import (
	"github.com/spf13/cobra"
)

// reportCmd is an explicit alias for the root behavior, so scripts can say
// "togglpace report" next to "togglpace serve".
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print per-day work pace summaries",
	Long: `report fetches time entries and prints one summary line per calendar day:
sessions, gaps, worked hours, the first-start to last-end span, and the final
work/elapsed percentage.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	reportCmd.Flags().BoolVarP(&reset, "reset", "r", false,
		"Clear cached days before fetching")
	rootCmd.AddCommand(reportCmd)
}
