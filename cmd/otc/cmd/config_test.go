package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "otc.toml", `
cache_capacity = 8
threshold = 0.5
smooth_window = 7
verbose = true
`)
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.CacheCapacity != 8 || c.Threshold != 0.5 || c.SmoothWindow != 7 || !c.Verbose {
		t.Errorf("unexpected config: %+v", c)
	}
	// Unset keys keep their defaults.
	d := DefaultConfig()
	if c.HistoryDepth != d.HistoryDepth || c.ViewWidth != d.ViewWidth || c.ViewHeight != d.ViewHeight {
		t.Errorf("defaults not kept: %+v", c)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "cache_size = 3\n", "cache_size"},
		{"negative threshold", "threshold = -2\n", "threshold"},
		{"nan threshold", "threshold = nan\n", "threshold"},
		{"infinite threshold", "threshold = inf\n", "threshold"},
		{"negative capacity", "cache_capacity = -1\n", "cache_capacity"},
		{"syntax", "threshold = \n", "otc.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "otc.toml", tt.content)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	c := &Config{}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	d := DefaultConfig()
	if *c != *d {
		t.Errorf("got %+v, want %+v", c, d)
	}
}
