package cmd

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/stability"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/transform"
)

// Config holds the settings read from the --config file.
type Config struct {
	CacheCapacity int     `toml:"cache_capacity"` // transform cache entries (default: 20)
	Threshold     float64 `toml:"threshold"`      // drift threshold in pixels (default: 1.0)
	SmoothWindow  int     `toml:"smooth_window"`  // default smoothing window (default: 5)
	HistoryDepth  int     `toml:"history_depth"`  // undo entries kept by the viewer (default: 100)
	Verbose       bool    `toml:"verbose"`

	// Widget size used when no session file is given.
	ViewWidth  int `toml:"view_width"`  // default: 1000
	ViewHeight int `toml:"view_height"` // default: 800
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		CacheCapacity: transform.DefaultCacheCapacity,
		Threshold:     stability.DefaultThreshold,
		SmoothWindow:  5,
		HistoryDepth:  100,
		ViewWidth:     1000,
		ViewHeight:    800,
	}
}

// Validate fills in defaults for unset values and rejects invalid ones.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if c.CacheCapacity == 0 {
		c.CacheCapacity = d.CacheCapacity
	}
	if c.CacheCapacity < 0 {
		return fmt.Errorf("cache_capacity must be positive, got %d", c.CacheCapacity)
	}
	if c.Threshold == 0 {
		c.Threshold = d.Threshold
	}
	if !(c.Threshold > 0) || math.IsInf(c.Threshold, 1) {
		return fmt.Errorf("threshold must be a finite positive number, got %g", c.Threshold)
	}
	if c.SmoothWindow < 1 {
		c.SmoothWindow = d.SmoothWindow
	}
	if c.HistoryDepth < 1 {
		c.HistoryDepth = d.HistoryDepth
	}
	if c.ViewWidth <= 0 {
		c.ViewWidth = d.ViewWidth
	}
	if c.ViewHeight <= 0 {
		c.ViewHeight = d.ViewHeight
	}
	return nil
}

// LoadConfig reads a TOML file over the defaults. Unknown keys are errors.
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	c := DefaultConfig()
	dec := toml.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("config %s: %s", filename, strict.String())
		}
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return c, nil
}
