package stability

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Result is the outcome of a stability check.
type Result struct {
	// Stable is false when any compared point moved more than Threshold.
	Stable    bool
	Threshold float64

	// Displacements maps each point over the threshold to its displacement
	// in pixels. Empty when Stable.
	Displacements map[PointID]float64

	// Compared is the number of points checked. Max and Mean summarise the
	// finite displacements of all of them.
	Compared int
	Max      float64
	Mean     float64

	// TransformChanged is set when the two sides were computed under
	// transforms with different cache keys.
	TransformChanged bool

	all []float64
}

func newResult(threshold float64) Result {
	return Result{
		Stable:        true,
		Threshold:     threshold,
		Displacements: make(map[PointID]float64),
	}
}

func (r *Result) add(id PointID, d float64) {
	r.Compared++
	if !math.IsInf(d, 0) && !math.IsNaN(d) {
		r.all = append(r.all, d)
	}
	// NaN never compares greater, so check it explicitly.
	if d > r.Threshold || math.IsNaN(d) {
		r.Displacements[id] = d
		r.Stable = false
	}
}

func (r *Result) finish() {
	if len(r.all) > 0 {
		r.Max = floats.Max(r.all)
		r.Mean = stat.Mean(r.all, nil)
	}
	if len(r.Displacements) > 0 {
		for _, d := range r.Displacements {
			if math.IsInf(d, 1) {
				r.Max = math.Inf(1)
			}
		}
	}
	r.all = nil
}

// Moved returns the displaced point IDs in index order.
func (r Result) Moved() []PointID {
	ids := make([]PointID, 0, len(r.Displacements))
	for id := range r.Displacements {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

func (r Result) String() string {
	if r.Stable {
		return fmt.Sprintf("stable (%d points, max %.3fpx)", r.Compared, r.Max)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d points moved more than %.3gpx:", len(r.Displacements), r.Compared, r.Threshold)
	for _, id := range r.Moved() {
		fmt.Fprintf(&b, " %s=%.3fpx", id, r.Displacements[id])
	}
	if r.TransformChanged {
		b.WriteString(" (transform changed)")
	}
	return b.String()
}
