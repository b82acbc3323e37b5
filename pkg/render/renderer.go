// Package render draws curves into gio operation lists and resolves pointer
// positions back to points, both through one Transform per frame.
package render

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/transform"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/view"
)

// Style controls how curves are drawn.
type Style struct {
	PointRadius float64 // marker radius in pixels
	LineWidth   float64 // connecting line width; 0 disables lines
}

// DefaultStyle returns the default marker and line sizes.
func DefaultStyle() Style {
	return Style{PointRadius: 3, LineWidth: 1}
}

// Renderer draws curves. It resolves one Transform per frame from its cache
// and keeps a screen-space buffer between frames.
type Renderer struct {
	Cache *transform.Cache
	Batch transform.Batch
	Style Style

	screen []curve.Point
}

// NewRenderer creates a renderer using cache. A nil cache gets a private
// one with the default capacity.
func NewRenderer(cache *transform.Cache) *Renderer {
	if cache == nil {
		cache = transform.NewCache(0)
	}
	return &Renderer{
		Cache: cache,
		Batch: transform.Batch{ParallelThreshold: 50000},
		Style: DefaultStyle(),
	}
}

// Frame returns the Transform for vs. Call it once per paint pass and pass
// the result to every Draw and HitTest call of that pass.
func (r *Renderer) Frame(vs view.ViewState) *transform.Transform {
	return r.Cache.GetOrCreate(vs)
}

// ScreenPoints returns c's points in screen space. The slice is reused by
// the next call.
func (r *Renderer) ScreenPoints(t *transform.Transform, c *curve.Curve) []curve.Point {
	r.screen = r.Batch.TransformInto(r.screen, t, c.Points)
	return r.screen
}

// Draw paints c under t. Points in selected are highlighted.
func (r *Renderer) Draw(ops *op.Ops, t *transform.Transform, c *curve.Curve, selected map[int]bool) {
	pts := r.ScreenPoints(t, c)
	if len(pts) == 0 {
		return
	}

	if r.Style.LineWidth > 0 && len(pts) > 1 {
		var path clip.Path
		path.Begin(ops)
		path.MoveTo(f32.Pt(float32(pts[0].Pos.X), float32(pts[0].Pos.Y)))
		for _, p := range pts[1:] {
			path.LineTo(f32.Pt(float32(p.Pos.X), float32(p.Pos.Y)))
		}
		stroke := clip.Stroke{
			Path:  path.End(),
			Width: float32(r.Style.LineWidth),
		}.Op()
		paint.FillShape(ops, ColorCurve, stroke)
	}

	radius := math.Max(r.Style.PointRadius, 1)
	for i, p := range pts {
		col := StatusColor(p.Status)
		rad := radius
		if selected[i] {
			col = ColorSelected
			rad *= 1.5
		}
		renderMarker(ops, p.Pos.X, p.Pos.Y, rad, col)
	}
}

// HitTest returns the index of the point of c nearest to screen position
// (sx, sy) within radiusPx. The cursor is mapped to data space once; the
// distance check runs in data space, which is equivalent because the
// transform scales both axes by the same magnitude.
func HitTest(t *transform.Transform, c *curve.Curve, sx, sy, radiusPx float64) (int, bool) {
	dx, dy := t.ApplyInverse(sx, sy)
	cursor := curve.Vec{X: dx, Y: dy}
	limit := t.DataDistance(radiusPx)

	best := -1
	bestDist := math.Inf(1)
	for i, p := range c.Points {
		d := p.Pos.Dist(cursor)
		if d <= limit && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// SelectRect returns the indices of the points of c whose screen positions
// fall inside rect.
func SelectRect(t *transform.Transform, c *curve.Curve, rect image.Rectangle) []int {
	rect = rect.Canon()
	x0, y0 := t.ApplyInverse(float64(rect.Min.X), float64(rect.Min.Y))
	x1, y1 := t.ApplyInverse(float64(rect.Max.X), float64(rect.Max.Y))
	minX, maxX := math.Min(x0, x1), math.Max(x0, x1)
	minY, maxY := math.Min(y0, y1), math.Max(y0, y1)

	var out []int
	for i, p := range c.Points {
		if p.Pos.X >= minX && p.Pos.X <= maxX && p.Pos.Y >= minY && p.Pos.Y <= maxY {
			out = append(out, i)
		}
	}
	return out
}

// renderMarker draws a filled circle centred on (x, y).
func renderMarker(ops *op.Ops, x, y, radius float64, fill color.NRGBA) {
	stack := op.Affine(f32.Affine2D{}.Offset(f32.Pt(float32(x), float32(y)))).Push(ops)
	defer stack.Pop()

	r := int(math.Ceil(radius))
	rect := image.Rectangle{
		Min: image.Pt(-r, -r),
		Max: image.Pt(r, r),
	}
	paint.FillShape(ops, fill, clip.Ellipse(rect).Op(ops))
}
