package trackdata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
)

// Write serialises curves in track file form. Coordinates use the shortest
// representation that parses back to the same float64.
func Write(w io.Writer, curves []*curve.Curve) error {
	bw := bufio.NewWriter(w)
	for i, c := range curves {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "track %s {\n", strconv.Quote(c.Name))
		for _, p := range c.Points {
			fmt.Fprintf(bw, "\t%d %s %s", p.Frame, formatFloat(p.Pos.X), formatFloat(p.Pos.Y))
			if p.Status != curve.StatusNormal {
				fmt.Fprintf(bw, " %s", p.Status)
			}
			bw.WriteString("\n")
		}
		bw.WriteString("}\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write tracks: %w", err)
	}
	return nil
}

// WriteFile writes curves to filename.
func WriteFile(filename string, curves []*curve.Curve) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, curves); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
