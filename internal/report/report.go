package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"togglpace/internal/config"
	"togglpace/internal/core/model"
	"togglpace/internal/core/trajectory"
	"togglpace/internal/data/cache"
	"togglpace/internal/data/source"
	"togglpace/internal/presentation/formatter"
	"togglpace/internal/util"
)

// Options control one report run.
type Options struct {
	OutputFormat string
	EntriesFile  string
	Reset        bool
}

// Reporter drives the fetch -> validate -> trajectory -> format pipeline
// for the report command.
type Reporter struct {
	cfg      config.Config
	opts     Options
	builder  *trajectory.Builder
	source   source.Source
	dayCache *cache.DayCache
	loc      *time.Location
}

// New wires a Reporter from the resolved configuration.
func New(cfg config.Config, opts Options) (*Reporter, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	src, dayCache, err := source.ForConfig(cfg, opts.EntriesFile)
	if err != nil {
		return nil, err
	}

	return &Reporter{
		cfg:      cfg,
		opts:     opts,
		builder:  trajectory.NewBuilder(loc, cfg.StartHour, cfg.EndHour),
		source:   src,
		dayCache: dayCache,
		loc:      loc,
	}, nil
}

// Run executes the pipeline and prints the result.
func (r *Reporter) Run(ctx context.Context) error {
	startTime := time.Now()

	if r.opts.Reset && r.dayCache != nil {
		if err := r.dayCache.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		util.LogInfo("Cache cleared")
	}
	if r.dayCache != nil {
		if err := r.dayCache.Preload(); err != nil {
			util.LogWarnf("Cache preload failed: %v", err)
		}
	}

	fetchStart := time.Now()
	payload, err := r.source.Payload(ctx)
	if err != nil {
		return fmt.Errorf("failed to load time entries: %w", err)
	}
	util.LogDebugf("Fetch duration: %v (%d today, %d historical)",
		time.Since(fetchStart), len(payload.Today), len(payload.Historical))

	summaries := r.Summarize(payload, time.Now())

	if err := formatter.New(r.opts.OutputFormat).Format(summaries); err != nil {
		return err
	}

	util.LogDebugf("Report completed in %v", time.Since(startTime))
	return nil
}

// Summarize converts a payload into per-day summaries, oldest day first,
// today last.
func (r *Reporter) Summarize(payload model.Payload, now time.Time) []formatter.DaySummary {
	historical, droppedHist := model.ValidateAll(payload.Historical)
	today, droppedToday := model.ValidateAll(payload.Today)
	if dropped := droppedHist + droppedToday; dropped > 0 {
		util.LogDebugf("Dropped %d malformed entries", dropped)
	}

	buildStart := time.Now()
	buckets := r.builder.BucketByDay(historical)

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	todayKey := now.In(r.loc).Format("2006-01-02")

	summaries := make([]formatter.DaySummary, 0, len(dates)+1)
	for _, date := range dates {
		if date == todayKey {
			// Today's bucket merges with the live entries below.
			continue
		}
		day, err := time.ParseInLocation("2006-01-02", date, r.loc)
		if err != nil {
			continue
		}
		points := r.builder.BuildDay(buckets[date], day, now)
		summaries = append(summaries, formatter.Summarize(date, points))
	}

	todayEntries := append(buckets[todayKey], today...)
	todayPoints := r.builder.BuildDay(todayEntries, now, now)
	summaries = append(summaries, formatter.Summarize(todayKey, todayPoints))

	util.LogDebugf("Trajectory build duration: %v (%d days)", time.Since(buildStart), len(summaries))
	return summaries
}
