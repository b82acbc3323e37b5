package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/render"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/transform"
)

var pickRadius float64

var pickCmd = &cobra.Command{
	Use:   "pick <track_file> <sx> <sy>",
	Short: "Find the track point under a screen position",
	Args:  cobra.ExactArgs(3),
	RunE:  runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
	pickCmd.Flags().Float64VarP(&pickRadius, "radius", "r", 5, "hit radius in pixels")
}

func runPick(cmd *cobra.Command, args []string) error {
	sx, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid screen x %q: %w", args[1], err)
	}
	sy, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid screen y %q: %w", args[2], err)
	}

	c, _, err := loadTrack(args[0])
	if err != nil {
		return err
	}
	vs, err := loadView(c)
	if err != nil {
		return err
	}
	t := transform.New(vs)

	out := cmd.OutOrStdout()
	dx, dy := t.ApplyInverse(sx, sy)
	fmt.Fprintf(out, "Screen (%.2f, %.2f) -> data (%.3f, %.3f)\n", sx, sy, dx, dy)

	idx, ok := render.HitTest(t, c, sx, sy, pickRadius)
	if !ok {
		fmt.Fprintf(out, "No point within %.1fpx\n", pickRadius)
		return nil
	}
	p := c.Points[idx]
	s := t.ApplyPoint(p.Pos)
	fmt.Fprintf(out, "Hit point %d: frame %d at (%.3f, %.3f), screen (%.2f, %.2f), %s\n",
		idx, p.Frame, p.Pos.X, p.Pos.Y, s.X, s.Y, p.Status)
	return nil
}
