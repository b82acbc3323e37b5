package transform

import (
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/view"
)

// Zoom limits applied by ZoomAt.
const (
	MinZoom = 0.01
	MaxZoom = 1000.0
)

// ZoomAt returns vs with its zoom multiplied by factor, clamped to
// [MinZoom, MaxZoom], and the pan offset adjusted so that the data point
// under (sx, sy) stays under it.
func ZoomAt(vs view.ViewState, sx, sy, factor float64) (view.ViewState, error) {
	before := New(vs)
	dx, dy := before.ApplyInverse(sx, sy)

	zoom := vs.Zoom() * factor
	if zoom < MinZoom {
		zoom = MinZoom
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}

	zoomed, err := vs.WithUpdates(view.Zoom(zoom))
	if err != nil {
		return vs, err
	}
	nx, ny := New(zoomed).Apply(dx, dy)
	px, py := zoomed.PanOffset()
	return zoomed.WithUpdates(view.PanOffset(px+sx-nx, py+sy-ny))
}

// Pan returns vs with (dx, dy) screen pixels added to its pan offset.
func Pan(vs view.ViewState, dx, dy float64) (view.ViewState, error) {
	px, py := vs.PanOffset()
	return vs.WithUpdates(view.PanOffset(px+dx, py+dy))
}
