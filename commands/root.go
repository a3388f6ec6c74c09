package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"togglpace/internal/config"
	"togglpace/internal/report"
	"togglpace/internal/util"
)

var (
	// Logging related
	debug bool

	// Configuration
	configFile  string
	timezone    string
	startHour   int
	endHour     int
	historyDays int
	cacheDir    string
	entriesFile string

	// Output related
	outputFormat string
	reset        bool

	rootCmd = &cobra.Command{
		Use:   "togglpace [flags]",
		Short: "Toggl work pace visualizer",
		Long: `togglpace fetches time entries from the Toggl Track API and derives, per
calendar day, how much of the elapsed work window was actually worked.

Set TOGGL_API_TOKEN in the environment or a .env file.

Examples:
  togglpace                                  # Per-day report for the configured range
  togglpace --days 14 --output csv           # Two weeks as CSV
  togglpace --output summary                 # Aggregate summary
  togglpace serve                            # Serve the interactive chart
  togglpace serve --entries-file export.json # Serve from a local JSON export`,
		RunE: runReport,
	}
)

const (
	defaultLogFile    = "~/.togglpace/logs/app.log"
	defaultCacheDir   = "~/.togglpace/cache"
	defaultConfigFile = "~/.togglpace/config.yaml"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", defaultConfigFile,
		"Config file path")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone for local-day computations (e.g. America/Los_Angeles)")
	rootCmd.PersistentFlags().IntVar(&startHour, "start-hour", 0,
		"Work window start hour (0-23)")
	rootCmd.PersistentFlags().IntVar(&endHour, "end-hour", 0,
		"Work window end hour (1-24)")
	rootCmd.PersistentFlags().IntVar(&historyDays, "days", 0,
		"Days of history to include")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "",
		"Directory for cached historical days")
	rootCmd.PersistentFlags().StringVar(&entriesFile, "entries-file", "",
		"Read entries from a local JSON export instead of the API")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	rootCmd.Flags().BoolVarP(&reset, "reset", "r", false,
		"Clear cached days before fetching")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	reporter, err := report.New(cfg, report.Options{
		OutputFormat: outputFormat,
		EntriesFile:  entriesFile,
		Reset:        reset,
	})
	if err != nil {
		return err
	}

	return reporter.Run(cmd.Context())
}

// setup initializes logging, loads the layered configuration (defaults,
// config file, flags, environment) and validates it.
func setup(cmd *cobra.Command) (config.Config, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		logFile = ""
	}
	util.InitLogger(logLevel, logFile, debug)

	// .env is optional; a missing file is the common case.
	_ = godotenv.Load()

	cfg, err := config.Load(expandPath(configFile))
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("timezone") {
		cfg.Timezone = timezone
	}
	if flags.Changed("start-hour") {
		cfg.StartHour = startHour
	}
	if flags.Changed("end-hour") {
		cfg.EndHour = endHour
	}
	if flags.Changed("days") {
		cfg.HistoryDays = historyDays
	}
	if flags.Changed("cache-dir") {
		cfg.CacheDir = cacheDir
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir
	}
	cfg.CacheDir = expandPath(cfg.CacheDir)

	cfg.APIToken = os.Getenv("TOGGL_API_TOKEN")

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
