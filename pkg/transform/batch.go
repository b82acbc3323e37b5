package transform

import (
	"runtime"
	"sync"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
)

// Batch applies a Transform to point slices. The zero value runs on the
// calling goroutine.
type Batch struct {
	// ParallelThreshold enables chunked parallel work for inputs longer
	// than this many points. Zero disables it.
	ParallelThreshold int
	// Workers caps the number of goroutines; zero means GOMAXPROCS.
	Workers int
}

// TransformPoints maps pts to screen space. Frame and status pass through
// unchanged; the result has the same length and order as pts.
func (b Batch) TransformPoints(t *Transform, pts []curve.Point) []curve.Point {
	return b.TransformInto(nil, t, pts)
}

// TransformInto is TransformPoints writing into dst, which is reused when its
// capacity allows. The serial path performs no allocation beyond growing dst.
func (b Batch) TransformInto(dst []curve.Point, t *Transform, pts []curve.Point) []curve.Point {
	out := grow(dst, len(pts))
	if !b.parallel(len(pts)) {
		forwardRange(out, t, pts, 0, len(pts))
		return out
	}
	b.split(len(pts), func(lo, hi int) { forwardRange(out, t, pts, lo, hi) })
	return out
}

// InversePoints maps screen-space points back to data space.
func (b Batch) InversePoints(t *Transform, pts []curve.Point) []curve.Point {
	out := make([]curve.Point, len(pts))
	if !b.parallel(len(pts)) {
		inverseRange(out, t, pts, 0, len(pts))
		return out
	}
	b.split(len(pts), func(lo, hi int) { inverseRange(out, t, pts, lo, hi) })
	return out
}

func forwardRange(dst []curve.Point, t *Transform, pts []curve.Point, lo, hi int) {
	kx, ky, tx, ty := t.kx, t.ky, t.tx, t.ty
	for i := lo; i < hi; i++ {
		p := pts[i]
		p.Pos = curve.Vec{X: float64(p.Pos.X*kx) + tx, Y: float64(p.Pos.Y*ky) + ty}
		dst[i] = p
	}
}

func inverseRange(dst []curve.Point, t *Transform, pts []curve.Point, lo, hi int) {
	kx, ky, tx, ty := t.kx, t.ky, t.tx, t.ty
	for i := lo; i < hi; i++ {
		p := pts[i]
		p.Pos = curve.Vec{X: (p.Pos.X - tx) / kx, Y: (p.Pos.Y - ty) / ky}
		dst[i] = p
	}
}

func (b Batch) parallel(n int) bool {
	return b.ParallelThreshold > 0 && n > b.ParallelThreshold
}

// split runs fn over contiguous chunks of [0, n) on separate goroutines.
func (b Batch) split(n int, fn func(lo, hi int)) {
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
