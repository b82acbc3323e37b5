package edit

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/stability"
)

// Config controls the executor.
type Config struct {
	Threshold    float64 // drift threshold in screen pixels (default: 1.0)
	HistoryDepth int     // undo entries kept (default: 100)
}

// DefaultConfig returns a Config with the default threshold and depth.
func DefaultConfig() *Config {
	return &Config{
		Threshold:    stability.DefaultThreshold,
		HistoryDepth: 100,
	}
}

// Validate replaces out-of-range values with defaults. A NaN or infinite
// threshold is an error.
func (c *Config) Validate() error {
	if math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) {
		return fmt.Errorf("threshold must be finite, got %g", c.Threshold)
	}
	if c.Threshold <= 0 {
		c.Threshold = stability.DefaultThreshold
	}
	if c.HistoryDepth < 1 {
		c.HistoryDepth = 100
	}
	return nil
}
