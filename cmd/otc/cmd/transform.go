package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/transform"
)

var (
	showMatrix bool
	inverse    bool
)

var transformCmd = &cobra.Command{
	Use:   "transform <track_file>",
	Short: "Print the screen position of every track point",
	Long: `Maps each point of a track to screen space with the view from --session
(or a fitted view) and prints frame, data and screen coordinates.

With --inverse the track coordinates are taken as screen positions and
mapped back to data space.`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)
	transformCmd.Flags().BoolVar(&showMatrix, "matrix", false, "print the homogeneous transform matrix")
	transformCmd.Flags().BoolVar(&inverse, "inverse", false, "map screen positions back to data space")
}

func runTransform(cmd *cobra.Command, args []string) error {
	c, _, err := loadTrack(args[0])
	if err != nil {
		return err
	}
	vs, err := loadView(c)
	if err != nil {
		return err
	}

	cache := transform.NewCache(cfg.CacheCapacity)
	t := cache.GetOrCreate(vs)
	var batch transform.Batch
	mapped := batch.TransformPoints
	cols := [4]string{"x", "y", "sx", "sy"}
	if inverse {
		mapped = batch.InversePoints
		cols = [4]string{"sx", "sy", "x", "y"}
	}
	results := mapped(t, c.Points)

	out := cmd.OutOrStdout()
	if cfg.Verbose || showMatrix {
		fmt.Fprintf(out, "Transform: %s\n", t)
	}
	if showMatrix {
		fmt.Fprintf(out, "%v\n\n", mat.Formatted(t.Matrix(), mat.Prefix(""), mat.Squeeze()))
	}

	fmt.Fprintf(out, "Track %s (%d points)\n", c.Name, c.Len())
	fmt.Fprintf(out, "%6s %12s %12s %12s %12s  %s\n", "frame", cols[0], cols[1], cols[2], cols[3], "status")
	for i, p := range c.Points {
		s := results[i].Pos
		fmt.Fprintf(out, "%6d %12.3f %12.3f %12.3f %12.3f  %s\n", p.Frame, p.Pos.X, p.Pos.Y, s.X, s.Y, p.Status)
	}
	return nil
}
