package curve

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// All mutation functions below return a new slice and leave the input
// untouched. indices selects the points to modify; nil means every point.
// Out-of-range indices are reported as errors.

func selection(n int, indices []int) ([]int, error) {
	if indices == nil {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("curve: index %d out of range [0,%d)", idx, n)
		}
	}
	return indices, nil
}

func clonePoints(points []Point) []Point {
	out := make([]Point, len(points))
	copy(out, points)
	return out
}

// window returns the [lo, hi) neighbourhood of i with the given size,
// clamped to the slice bounds.
func window(i, size, n int) (int, int) {
	half := size / 2
	lo := i - half
	if lo < 0 {
		lo = 0
	}
	hi := i + half + 1
	if hi > n {
		hi = n
	}
	return lo, hi
}

// Smooth replaces each selected point with the moving average of its
// neighbours. Averages are computed from the unmodified input.
func Smooth(points []Point, indices []int, size int) ([]Point, error) {
	if size < 1 {
		return nil, fmt.Errorf("curve: smoothing window must be >= 1, got %d", size)
	}
	sel, err := selection(len(points), indices)
	if err != nil {
		return nil, err
	}
	out := clonePoints(points)
	if size == 1 {
		return out, nil
	}
	xs := make([]float64, size)
	ys := make([]float64, size)
	for _, i := range sel {
		lo, hi := window(i, size, len(points))
		n := hi - lo
		for k := 0; k < n; k++ {
			xs[k] = points[lo+k].Pos.X
			ys[k] = points[lo+k].Pos.Y
		}
		out[i].Pos = Vec{
			X: floats.Sum(xs[:n]) / float64(n),
			Y: floats.Sum(ys[:n]) / float64(n),
		}
	}
	return out, nil
}

// Filter applies a median filter over each selected point's neighbourhood.
// Even window sizes are widened by one so the median is a sample.
func Filter(points []Point, indices []int, size int) ([]Point, error) {
	if size < 1 {
		return nil, fmt.Errorf("curve: filter window must be >= 1, got %d", size)
	}
	if size%2 == 0 {
		size++
	}
	sel, err := selection(len(points), indices)
	if err != nil {
		return nil, err
	}
	out := clonePoints(points)
	xs := make([]float64, size)
	ys := make([]float64, size)
	for _, i := range sel {
		lo, hi := window(i, size, len(points))
		n := hi - lo
		for k := 0; k < n; k++ {
			xs[k] = points[lo+k].Pos.X
			ys[k] = points[lo+k].Pos.Y
		}
		sort.Float64s(xs[:n])
		sort.Float64s(ys[:n])
		out[i].Pos = Vec{
			X: stat.Quantile(0.5, stat.Empirical, xs[:n], nil),
			Y: stat.Quantile(0.5, stat.Empirical, ys[:n], nil),
		}
	}
	return out, nil
}

// Offset translates the selected points by (dx, dy).
func Offset(points []Point, indices []int, dx, dy float64) ([]Point, error) {
	sel, err := selection(len(points), indices)
	if err != nil {
		return nil, err
	}
	out := clonePoints(points)
	for _, i := range sel {
		out[i].Pos.X += dx
		out[i].Pos.Y += dy
	}
	return out, nil
}

// Scale scales the selected points about center.
func Scale(points []Point, indices []int, sx, sy float64, center Vec) ([]Point, error) {
	sel, err := selection(len(points), indices)
	if err != nil {
		return nil, err
	}
	out := clonePoints(points)
	for _, i := range sel {
		p := points[i].Pos
		out[i].Pos = Vec{
			X: center.X + (p.X-center.X)*sx,
			Y: center.Y + (p.Y-center.Y)*sy,
		}
	}
	return out, nil
}

// Rotate rotates the selected points by degrees (counter-clockwise in data
// space) about center.
func Rotate(points []Point, indices []int, degrees float64, center Vec) ([]Point, error) {
	sel, err := selection(len(points), indices)
	if err != nil {
		return nil, err
	}
	out := clonePoints(points)
	if degrees == 0 {
		return out, nil
	}
	rad := degrees * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	for _, i := range sel {
		x := points[i].Pos.X - center.X
		y := points[i].Pos.Y - center.Y
		out[i].Pos = Vec{
			X: center.X + x*cos - y*sin,
			Y: center.Y + x*sin + y*cos,
		}
	}
	return out, nil
}

// SelectionCenter returns the centroid of the selected points.
func SelectionCenter(points []Point, indices []int) (Vec, error) {
	sel, err := selection(len(points), indices)
	if err != nil {
		return Vec{}, err
	}
	if len(sel) == 0 {
		return Vec{}, fmt.Errorf("curve: empty selection")
	}
	xs := make([]float64, len(sel))
	ys := make([]float64, len(sel))
	for k, i := range sel {
		xs[k] = points[i].Pos.X
		ys[k] = points[i].Pos.Y
	}
	return Vec{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}, nil
}
