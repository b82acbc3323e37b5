package transform

import (
	"math/rand"
	"testing"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/view"
)

func randomPoints(n int, seed int64) []curve.Point {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]curve.Point, n)
	for i := range pts {
		pts[i] = curve.Point{
			Frame:  i + 1,
			Pos:    curve.Vec{X: rng.Float64()*3000 - 500, Y: rng.Float64()*2000 - 300},
			Status: curve.Status(rng.Intn(5)),
		}
	}
	return pts
}

func oddTransform(t testing.TB) *Transform {
	return New(mustView(t, func(p *view.Params) {
		p.DisplayWidth, p.DisplayHeight = 1920, 1080
		p.Zoom = 1.37
		p.CenterOffsetX, p.CenterOffsetY = 13.1, 571.9
		p.PanOffsetX, p.PanOffsetY = -22.3, 8.8
		p.ManualOffsetX = 0.1
		p.FlipY = true
		p.ScaleToImage = true
		p.ImageScale = 0.9
	}))
}

func TestBatchMatchesApplyExactly(t *testing.T) {
	tr := oddTransform(t)
	pts := randomPoints(1000, 7)

	for _, b := range []Batch{{}, {ParallelThreshold: 64, Workers: 3}} {
		out := b.TransformPoints(tr, pts)
		if len(out) != len(pts) {
			t.Fatalf("len = %d, want %d", len(out), len(pts))
		}
		for i, p := range pts {
			x, y := tr.Apply(p.Pos.X, p.Pos.Y)
			if out[i].Pos.X != x || out[i].Pos.Y != y {
				t.Fatalf("%+v point %d: batch %v, apply (%v, %v)", b, i, out[i].Pos, x, y)
			}
			if out[i].Frame != p.Frame || out[i].Status != p.Status {
				t.Fatalf("point %d tag changed: %+v -> %+v", i, p, out[i])
			}
		}
	}
}

func TestBatchEmptyAndReuse(t *testing.T) {
	tr := oddTransform(t)
	var b Batch
	if out := b.TransformPoints(tr, nil); len(out) != 0 {
		t.Fatalf("empty input gave %d points", len(out))
	}

	pts := randomPoints(10, 1)
	buf := make([]curve.Point, 0, 32)
	out := b.TransformInto(buf, tr, pts)
	if cap(out) != 32 {
		t.Errorf("TransformInto reallocated a large enough buffer")
	}
	if allocs := testing.AllocsPerRun(50, func() { b.TransformInto(buf, tr, pts) }); allocs != 0 {
		t.Errorf("TransformInto allocated %v times", allocs)
	}
}

func TestInversePoints(t *testing.T) {
	tr := oddTransform(t)
	var b Batch
	pts := randomPoints(50, 3)
	back := b.InversePoints(tr, b.TransformPoints(tr, pts))
	for i := range pts {
		if !closeTo(back[i].Pos.X, pts[i].Pos.X) || !closeTo(back[i].Pos.Y, pts[i].Pos.Y) {
			t.Fatalf("point %d: %v -> %v", i, pts[i].Pos, back[i].Pos)
		}
	}
}

func BenchmarkTransformPoints(b *testing.B) {
	tr := oddTransform(b)
	pts := randomPoints(10000, 11)
	dst := make([]curve.Point, len(pts))
	var batch Batch
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dst = batch.TransformInto(dst, tr, pts)
	}
}

func BenchmarkApplyLoop(b *testing.B) {
	tr := oddTransform(b)
	pts := randomPoints(10000, 11)
	dst := make([]curve.Point, len(pts))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j, p := range pts {
			x, y := tr.Apply(p.Pos.X, p.Pos.Y)
			dst[j] = curve.Point{Frame: p.Frame, Pos: curve.Vec{X: x, Y: y}, Status: p.Status}
		}
	}
}
