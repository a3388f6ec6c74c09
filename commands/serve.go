package commands

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"togglpace/internal/core/trajectory"
	"togglpace/internal/data/source"
	"togglpace/internal/server"
	"togglpace/internal/util"
)

var (
	port int

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive work pace chart",
		Long: `serve starts an HTTP server with the Chart.js work pace page plus the
JSON API behind it (/api/toggl for raw entries, /api/trajectory for the
computed point sequences).`,
		RunE: runServe,
	}
)

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", 0,
		"HTTP port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}

	src, dayCache, err := source.ForConfig(cfg, entriesFile)
	if err != nil {
		return err
	}
	if dayCache != nil {
		if err := dayCache.Preload(); err != nil {
			util.LogWarnf("Cache preload failed: %v", err)
		}
	}

	// A file source keeps serving the last good payload and hot-reloads on
	// change.
	if fileSource, ok := src.(*source.FileSource); ok {
		if err := fileSource.Watch(); err != nil {
			return fmt.Errorf("failed to watch %s: %w", entriesFile, err)
		}
		defer fileSource.Close()
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	builder := trajectory.NewBuilder(loc, cfg.StartHour, cfg.EndHour)

	srv, err := server.New(src, builder)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	util.LogInfof("Listening on %s", addr)
	fmt.Printf("Server listening on http://localhost:%d\n", cfg.Port)
	return httpServer.ListenAndServe()
}
