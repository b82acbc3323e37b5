package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/transform"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/view"
)

var (
	benchFrames int
	benchViews  int
)

var cacheBenchCmd = &cobra.Command{
	Use:   "cache-bench <track_file>",
	Short: "Render frames through the transform cache and report its statistics",
	Long: `Simulates a paint loop: each frame resolves the Transform for one of --views
distinct pan positions through the cache and maps every track point to screen
space. Prints the elapsed time and the cache statistics.`,
	Args: cobra.ExactArgs(1),
	RunE: runCacheBench,
}

func init() {
	rootCmd.AddCommand(cacheBenchCmd)
	cacheBenchCmd.Flags().IntVarP(&benchFrames, "frames", "n", 10000, "number of frames")
	cacheBenchCmd.Flags().IntVar(&benchViews, "views", 10, "number of distinct views cycled through")
}

func runCacheBench(cmd *cobra.Command, args []string) error {
	if benchFrames < 1 || benchViews < 1 {
		return fmt.Errorf("--frames and --views must be positive")
	}
	c, _, err := loadTrack(args[0])
	if err != nil {
		return err
	}
	base, err := loadView(c)
	if err != nil {
		return err
	}

	views := make([]view.ViewState, 0, benchViews)
	cache := transform.NewCache(cfg.CacheCapacity)
	batch := transform.Batch{ParallelThreshold: 50000}
	var buf []curve.Point

	start := time.Now()
	for i := 0; i < benchFrames; i++ {
		vs, err := transform.Pan(base, float64(i%benchViews), 0)
		if err != nil {
			return err
		}
		t := cache.GetOrCreate(vs)
		buf = batch.TransformInto(buf, t, c.Points)
		if i < benchViews {
			views = append(views, vs)
		}
	}
	elapsed := time.Since(start)

	stats := cache.Stats()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Frames:      %d (%d points each, %d views)\n", benchFrames, c.Len(), len(views))
	fmt.Fprintf(out, "Elapsed:     %v (%v/frame)\n", elapsed, elapsed/time.Duration(benchFrames))
	fmt.Fprintf(out, "Cache:       %d/%d entries\n", stats.Size, stats.Capacity)
	fmt.Fprintf(out, "Hits:        %d\n", stats.Hits)
	fmt.Fprintf(out, "Misses:      %d\n", stats.Misses)
	fmt.Fprintf(out, "Evictions:   %d\n", stats.Evictions)
	fmt.Fprintf(out, "Hit rate:    %.1f%%\n", stats.HitRate()*100)
	if cfg.Verbose {
		for _, vs := range views {
			state := "evicted"
			if cache.Contains(vs) {
				state = "cached"
			}
			fmt.Fprintf(out, "  %s %s\n", transform.New(vs).CacheKey(), state)
		}
	}
	return nil
}
