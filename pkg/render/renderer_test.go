package render

import (
	"image"
	"testing"

	"gioui.org/op"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/transform"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/view"
)

func testView(t *testing.T, mod func(*view.Params)) view.ViewState {
	t.Helper()
	p := view.Params{
		WidgetWidth:   400,
		WidgetHeight:  300,
		DisplayWidth:  400,
		DisplayHeight: 300,
		Zoom:          2,
		ImageScale:    1,
	}
	if mod != nil {
		mod(&p)
	}
	vs, err := view.New(p)
	if err != nil {
		t.Fatalf("view.New failed: %v", err)
	}
	return vs
}

func testCurve() *curve.Curve {
	return &curve.Curve{Name: "c", Points: []curve.Point{
		{Frame: 1, Pos: curve.Vec{X: 10, Y: 10}, Status: curve.StatusKeyframe},
		{Frame: 2, Pos: curve.Vec{X: 20, Y: 10}},
		{Frame: 3, Pos: curve.Vec{X: 30, Y: 40}, Status: curve.StatusTracked},
	}}
}

func TestFrameUsesCache(t *testing.T) {
	r := NewRenderer(nil)
	vs := testView(t, nil)
	a := r.Frame(vs)
	b := r.Frame(vs)
	if a != b {
		t.Fatalf("Frame rebuilt the transform for an unchanged view")
	}
	if st := r.Cache.Stats(); st.Hits != 1 || st.Misses != 1 {
		t.Fatalf("cache stats = %+v", st)
	}
}

func TestScreenPointsMatchApply(t *testing.T) {
	r := NewRenderer(nil)
	tr := r.Frame(testView(t, func(p *view.Params) { p.FlipY = true; p.CenterOffsetY = 300 }))
	c := testCurve()
	pts := r.ScreenPoints(tr, c)
	for i, p := range c.Points {
		if want := tr.ApplyPoint(p.Pos); pts[i].Pos != want {
			t.Errorf("point %d: %v, want %v", i, pts[i].Pos, want)
		}
	}
}

func TestDraw(t *testing.T) {
	r := NewRenderer(nil)
	tr := r.Frame(testView(t, nil))
	var ops op.Ops
	r.Draw(&ops, tr, testCurve(), map[int]bool{1: true})
	r.Draw(&ops, tr, &curve.Curve{}, nil)
}

func TestHitTest(t *testing.T) {
	c := testCurve()
	tr := transform.New(testView(t, func(p *view.Params) {
		p.FlipY = true
		p.CenterOffsetY = 300
		p.PanOffsetX = 5
	}))

	sx, sy := tr.Apply(20, 10)
	idx, ok := HitTest(tr, c, sx+2, sy-2, 4)
	if !ok || idx != 1 {
		t.Fatalf("HitTest near point 1 = %d, %v", idx, ok)
	}
	if _, ok := HitTest(tr, c, sx+10, sy, 4); ok {
		t.Fatalf("HitTest matched a point 10px away with a 4px radius")
	}
}

func TestSelectRect(t *testing.T) {
	c := testCurve()
	tr := transform.New(testView(t, func(p *view.Params) {
		p.FlipY = true
		p.CenterOffsetY = 300
	}))
	// Screen positions: (20,280) (40,280) (60,220).
	got := SelectRect(tr, c, image.Rect(50, 200, 0, 290))
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("SelectRect = %v, want [0 1]", got)
	}
}
