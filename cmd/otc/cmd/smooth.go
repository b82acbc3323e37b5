package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/edit"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/trackdata"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/transform"
)

var (
	smoothWindow  int
	smoothMedian  bool
	smoothIndices []int
	smoothOut     string
)

var smoothCmd = &cobra.Command{
	Use:   "smooth <track_file>",
	Short: "Smooth a track and report drift of unselected points",
	Long: `Applies a moving average (or a median filter with --median) to the selected
points of a track. Points outside the selection are checked for screen drift
under the current view and the result is reported.

Without --indices every point is smoothed and no drift check applies.`,
	Args: cobra.ExactArgs(1),
	RunE: runSmooth,
}

func init() {
	rootCmd.AddCommand(smoothCmd)
	smoothCmd.Flags().IntVarP(&smoothWindow, "window", "w", 0, "window size (default from config)")
	smoothCmd.Flags().BoolVar(&smoothMedian, "median", false, "use a median filter instead of a moving average")
	smoothCmd.Flags().IntSliceVarP(&smoothIndices, "indices", "i", nil, "point indices to modify (default: all)")
	smoothCmd.Flags().StringVarP(&smoothOut, "out", "o", "", "write the modified tracks to this file")
}

func runSmooth(cmd *cobra.Command, args []string) error {
	c, curves, err := loadTrack(args[0])
	if err != nil {
		return err
	}
	vs, err := loadView(c)
	if err != nil {
		return err
	}
	t := transform.NewCache(cfg.CacheCapacity).GetOrCreate(vs)

	window := smoothWindow
	if window == 0 {
		window = cfg.SmoothWindow
	}
	indices := smoothIndices
	if len(indices) == 0 {
		indices = nil
	}

	var command edit.Command = edit.SmoothCommand{Indices: indices, Window: window}
	if smoothMedian {
		command = edit.FilterCommand{Indices: indices, Window: window}
	}

	exec, err := edit.NewExecutor(&edit.Config{Threshold: cfg.Threshold, HistoryDepth: 1}, logger)
	if err != nil {
		return err
	}
	res, err := exec.Execute(c, t, command)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Applied %s to %s (%d points)\n", command.Name(), c.Name, c.Len())
	if res.Compared == 0 {
		fmt.Fprintln(out, "Drift check: no unselected reference points")
	} else {
		fmt.Fprintf(out, "Drift check: %s\n", res)
	}

	if smoothOut != "" {
		if err := trackdata.WriteFile(smoothOut, curves); err != nil {
			return fmt.Errorf("error writing tracks: %w", err)
		}
		fmt.Fprintf(out, "Wrote %s\n", smoothOut)
	}
	return nil
}
