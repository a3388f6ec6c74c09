package trajectory

import (
	"sort"
	"time"

	"togglpace/internal/core/model"
)

// BucketByDay groups entries by the local calendar date of their start.
// Map iteration order is unspecified; callers that need stable output sort
// the keys.
func (b *Builder) BucketByDay(entries []model.Entry) map[string][]model.Entry {
	buckets := make(map[string][]model.Entry)
	for _, entry := range entries {
		if entry.Start.IsZero() {
			continue
		}
		key := entry.Start.In(b.loc).Format("2006-01-02")
		buckets[key] = append(buckets[key], entry)
	}
	return buckets
}

// BuildHistorical buckets a flat historical entry list by day and builds
// each day's trajectory independently, concatenating the results in date
// order. Today-only logic stays off unless a bucket happens to fall on the
// current local date.
func (b *Builder) BuildHistorical(entries []model.Entry, now time.Time) []Point {
	buckets := b.BucketByDay(entries)

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var points []Point
	for _, date := range dates {
		day, err := time.ParseInLocation("2006-01-02", date, b.loc)
		if err != nil {
			continue
		}
		points = append(points, b.BuildDay(buckets[date], day, now)...)
	}

	return points
}
