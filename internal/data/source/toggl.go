package source

import (
	"context"
	"time"

	"togglpace/internal/core/model"
	"togglpace/internal/data/cache"
	"togglpace/internal/data/toggl"
	"togglpace/internal/util"
)

// TogglSource assembles the payload from the Toggl API, serving completed
// historical days out of the day cache when every day in the range is
// already present. Today's entries are always fetched fresh.
type TogglSource struct {
	client      *toggl.Client
	cache       *cache.DayCache
	loc         *time.Location
	historyDays int
}

// NewTogglSource creates a source over the given client. cache may be nil
// to disable caching entirely.
func NewTogglSource(client *toggl.Client, dayCache *cache.DayCache, loc *time.Location, historyDays int) *TogglSource {
	return &TogglSource{
		client:      client,
		cache:       dayCache,
		loc:         loc,
		historyDays: historyDays,
	}
}

// Payload returns today's entries plus the configured history window.
func (s *TogglSource) Payload(ctx context.Context) (model.Payload, error) {
	now := time.Now().In(s.loc)
	dates := s.historyDates(now)

	if cached, ok := s.fromCache(dates); ok {
		today, err := s.client.FetchToday(ctx, now)
		if err != nil {
			return model.Payload{}, err
		}
		util.LogDebugf("Served %d historical days from cache", len(dates))
		return model.Payload{Today: today, Historical: cached}, nil
	}

	payload, err := s.client.FetchPayload(ctx, now, s.historyDays)
	if err != nil {
		return model.Payload{}, err
	}

	s.fill(dates, payload.Historical)
	return payload, nil
}

// historyDates lists the completed local dates in the history window,
// oldest first. Today is excluded: it is still mutable.
func (s *TogglSource) historyDates(now time.Time) []string {
	year, month, day := now.In(s.loc).Date()
	todayStart := time.Date(year, month, day, 0, 0, 0, 0, s.loc)

	dates := make([]string, 0, s.historyDays)
	for offset := s.historyDays; offset >= 1; offset-- {
		dates = append(dates, todayStart.AddDate(0, 0, -offset).Format("2006-01-02"))
	}
	return dates
}

// fromCache assembles the historical list when every day is cached.
func (s *TogglSource) fromCache(dates []string) ([]model.RawEntry, bool) {
	if s.cache == nil {
		return nil, false
	}

	var historical []model.RawEntry
	for _, date := range dates {
		entries, ok := s.cache.Get(date)
		if !ok {
			return nil, false
		}
		historical = append(historical, entries...)
	}
	return historical, true
}

// fill stores each fetched day, writing empty days too so one complete
// fetch makes the whole range cache-resident.
func (s *TogglSource) fill(dates []string, historical []model.RawEntry) {
	if s.cache == nil {
		return
	}

	byDate := make(map[string][]model.RawEntry)
	for _, entry := range historical {
		start, err := time.Parse(time.RFC3339, entry.Start)
		if err != nil {
			continue
		}
		key := start.In(s.loc).Format("2006-01-02")
		byDate[key] = append(byDate[key], entry)
	}

	for _, date := range dates {
		if err := s.cache.Set(date, byDate[date]); err != nil {
			util.LogWarnf("Failed to cache day %s: %v", date, err)
		}
	}
}
