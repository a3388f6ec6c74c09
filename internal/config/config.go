package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the process-wide settings: the fixed timezone and work
// window the trajectory core computes against, plus the serving and
// fetching knobs around it.
type Config struct {
	Timezone    string `yaml:"timezone"`
	StartHour   int    `yaml:"start_hour"`
	EndHour     int    `yaml:"end_hour"`
	HistoryDays int    `yaml:"history_days"`
	Port        int    `yaml:"port"`
	CacheDir    string `yaml:"cache_dir"`

	// APIToken comes from the TOGGL_API_TOKEN environment variable, never
	// from the config file.
	APIToken string `yaml:"-"`
}

// Default returns the built-in configuration, matching the original
// deployment: Pacific time, a 06:00-22:00 work window, 90 days of history.
func Default() Config {
	return Config{
		Timezone:    "America/Los_Angeles",
		StartHour:   6,
		EndHour:     22,
		HistoryDays: 90,
		Port:        3000,
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error; the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the work window and timezone.
func (c Config) Validate() error {
	if c.StartHour < 0 || c.StartHour > 23 {
		return fmt.Errorf("start_hour %d out of range [0, 23]", c.StartHour)
	}
	if c.EndHour < 1 || c.EndHour > 24 {
		return fmt.Errorf("end_hour %d out of range [1, 24]", c.EndHour)
	}
	if c.EndHour <= c.StartHour {
		return fmt.Errorf("end_hour %d must be after start_hour %d", c.EndHour, c.StartHour)
	}
	if c.HistoryDays < 0 {
		return fmt.Errorf("history_days must not be negative, got %d", c.HistoryDays)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
