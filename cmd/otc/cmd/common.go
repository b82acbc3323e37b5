package cmd

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/session"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/stability"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/trackdata"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/transform"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/view"
)

// loadTrack parses filename and returns the selected track together with
// every track in the file.
func loadTrack(filename string) (*curve.Curve, []*curve.Curve, error) {
	curves, err := trackdata.ParseFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing tracks: %w", err)
	}
	if len(curves) == 0 {
		return nil, nil, fmt.Errorf("%s contains no tracks", filename)
	}
	if trackName == "" {
		return curves[0], curves, nil
	}
	for _, c := range curves {
		if c.Name == trackName {
			return c, curves, nil
		}
	}
	return nil, nil, fmt.Errorf("track %q not found in %s", trackName, filename)
}

// loadView returns the session view if --session is set, otherwise a view
// fitting c into the configured widget size.
func loadView(c *curve.Curve) (view.ViewState, error) {
	if sessionPath != "" {
		vs, err := session.ParseFile(sessionPath)
		if err != nil {
			return view.ViewState{}, err
		}
		return vs, nil
	}
	return fitView(c, cfg.ViewWidth, cfg.ViewHeight)
}

// fitView builds a view whose display area is the bounding box of c,
// centred in a widget of the given size, with the box origin moved onto the
// display origin by the manual offset.
func fitView(c *curve.Curve, widgetW, widgetH int) (view.ViewState, error) {
	origin, ok := fitOrigin(c)
	if !ok {
		return view.Default(widgetW, widgetH), nil
	}
	b, _ := c.Bounds()
	displayW := int(math.Ceil(b.Width())) + 1
	displayH := int(math.Ceil(b.Height())) + 1

	vs, err := view.Default(widgetW, widgetH).WithUpdates(view.DisplaySize(displayW, displayH))
	if err != nil {
		return view.ViewState{}, err
	}
	return refit(vs, &origin)
}

// fitOrigin returns the data point fitView maps to the display origin.
func fitOrigin(c *curve.Curve) (curve.Vec, bool) {
	b, ok := c.Bounds()
	if !ok {
		return curve.Vec{}, false
	}
	return b.Min, true
}

// refit recentres vs and, when origin is set, recomputes the manual offset
// so origin lands on the display origin: the top-left corner, or the
// bottom-left one when vs is flipped. A nil origin leaves the manual offset
// alone.
func refit(vs view.ViewState, origin *curve.Vec) (view.ViewState, error) {
	vs, err := vs.WithUpdates(view.Recenter())
	if err != nil || origin == nil {
		return vs, err
	}
	scale := vs.Zoom() * vs.FitRatio()
	if vs.ScaleToImage() {
		scale *= vs.ImageScale()
	}
	my := -origin.Y * scale
	if vs.FlipY() {
		my = origin.Y * scale
	}
	return vs.WithUpdates(view.ManualOffset(-origin.X*scale, my))
}

// toggleFlip flips the y axis of vs and refits it around origin.
func toggleFlip(vs view.ViewState, origin *curve.Vec) (view.ViewState, error) {
	flipped, err := vs.WithUpdates(view.FlipY(!vs.FlipY()))
	if err != nil {
		return vs, err
	}
	return refit(flipped, origin)
}

// resizeView changes the widget size of vs and refits it around origin.
func resizeView(vs view.ViewState, w, h int, origin *curve.Vec) (view.ViewState, error) {
	resized, err := vs.WithUpdates(view.WidgetSize(w, h))
	if err != nil {
		return vs, err
	}
	return refit(resized, origin)
}

// describeShift compares c on screen under before and after and summarises
// how far the view change moved it.
func describeShift(tr *stability.Tracker, c *curve.Curve, before, after *transform.Transform, reason string) string {
	res := tr.DetectTransformationDrift(c.Points, c.Points, before, after, cfg.Threshold)
	if res.Stable {
		return fmt.Sprintf("%s kept %d points in place", reason, res.Compared)
	}
	return fmt.Sprintf("%s moved %d of %d points (max %.1fpx, mean %.1fpx)",
		reason, len(res.Displacements), res.Compared, res.Max, res.Mean)
}
