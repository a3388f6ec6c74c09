package source

import (
	"togglpace/internal/config"
	"togglpace/internal/data/cache"
	"togglpace/internal/data/toggl"
	"togglpace/internal/util"
)

// ForConfig selects the entry source: the local file when entriesFile is
// set, otherwise the Toggl API fronted by the day cache. The returned
// DayCache is nil for the file source or when caching is disabled.
func ForConfig(cfg config.Config, entriesFile string) (Source, *cache.DayCache, error) {
	if entriesFile != "" {
		fileSource, err := NewFileSource(entriesFile)
		if err != nil {
			return nil, nil, err
		}
		return fileSource, nil, nil
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	var dayCache *cache.DayCache
	if cfg.CacheDir != "" {
		dayCache, err = cache.NewDayCache(cfg.CacheDir)
		if err != nil {
			util.LogWarnf("Failed to open day cache at %s, continuing without: %v", cfg.CacheDir, err)
			dayCache = nil
		}
	}

	client := toggl.NewClient(cfg.APIToken, loc)
	return NewTogglSource(client, dayCache, loc, cfg.HistoryDays), dayCache, nil
}
