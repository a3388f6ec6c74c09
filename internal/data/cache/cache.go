package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/bytedance/sonic"

	"togglpace/internal/core/model"
	"togglpace/internal/util"
)

// DayCache persists the raw entries of completed calendar days. Past days
// never change upstream, so a cached day is valid forever; today is never
// cached. Each day lives in its own JSON file named YYYY-MM-DD.json, with
// an in-memory layer in front.
type DayCache struct {
	baseDir string
	mu      sync.RWMutex
	memory  map[string][]model.RawEntry
}

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NewDayCache creates a cache rooted at baseDir, creating it if needed.
func NewDayCache(baseDir string) (*DayCache, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &DayCache{
		baseDir: baseDir,
		memory:  make(map[string][]model.RawEntry),
	}, nil
}

// Get returns the cached entries for a local date key (YYYY-MM-DD). A day
// with no work is cached as an empty slice, so found distinguishes "day
// known to be empty" from "day never fetched".
func (c *DayCache) Get(date string) ([]model.RawEntry, bool) {
	c.mu.RLock()
	if entries, ok := c.memory[date]; ok {
		c.mu.RUnlock()
		return entries, true
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(date))
	if err != nil {
		return nil, false
	}

	var entries []model.RawEntry
	if err := sonic.Unmarshal(data, &entries); err != nil {
		util.LogWarnf("Discarding corrupt cache file for %s: %v", date, err)
		os.Remove(c.pathFor(date))
		return nil, false
	}
	if entries == nil {
		entries = []model.RawEntry{}
	}

	c.mu.Lock()
	c.memory[date] = entries
	c.mu.Unlock()

	return entries, true
}

// Set stores a day's entries in both layers.
func (c *DayCache) Set(date string, entries []model.RawEntry) error {
	if !dateKeyPattern.MatchString(date) {
		return fmt.Errorf("invalid cache date key %q", date)
	}
	if entries == nil {
		entries = []model.RawEntry{}
	}

	data, err := sonic.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.pathFor(date), data, 0644); err != nil {
		return err
	}

	c.mu.Lock()
	c.memory[date] = entries
	c.mu.Unlock()

	return nil
}

// Preload loads every cache file into memory.
func (c *DayCache) Preload() error {
	files, err := os.ReadDir(c.baseDir)
	if err != nil {
		return fmt.Errorf("failed to scan cache directory: %w", err)
	}

	loaded := 0
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		date := strings.TrimSuffix(file.Name(), ".json")
		if !dateKeyPattern.MatchString(date) {
			continue
		}
		if _, ok := c.Get(date); ok {
			loaded++
		}
	}

	util.LogDebugf("Preloaded %d cached days from %s", loaded, c.baseDir)
	return nil
}

// Clear removes both layers.
func (c *DayCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.memory = make(map[string][]model.RawEntry)

	files, err := os.ReadDir(c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".json" {
			if err := os.Remove(filepath.Join(c.baseDir, file.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stats returns the number of days held in memory.
func (c *DayCache) Stats() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memory)
}

func (c *DayCache) pathFor(date string) string {
	return filepath.Join(c.baseDir, date+".json")
}
