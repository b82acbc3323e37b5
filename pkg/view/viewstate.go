// Package view defines ViewState, the immutable snapshot of every parameter
// that determines how data coordinates map onto the rendering surface.
//
// The host widget builds a ViewState once per view-affecting event (resize,
// zoom, pan, flag toggle) and hands it to the transform cache. A ViewState
// is a comparable value: two states with identical fields are == and can be
// used directly as map keys.
package view

import "math"

// Params lists the raw fields of a ViewState. It is the mutable form used to
// build or serialise a state; New validates it.
type Params struct {
	WidgetWidth   int
	WidgetHeight  int
	DisplayWidth  int
	DisplayHeight int

	Zoom float64

	CenterOffsetX float64
	CenterOffsetY float64
	PanOffsetX    float64
	PanOffsetY    float64
	ManualOffsetX float64
	ManualOffsetY float64

	FlipY        bool
	ScaleToImage bool
	ImageScale   float64 // applied only when ScaleToImage is set
}

// ViewState is an immutable, validated set of view parameters.
type ViewState struct {
	widgetWidth   int
	widgetHeight  int
	displayWidth  int
	displayHeight int

	zoom float64

	centerOffsetX float64
	centerOffsetY float64
	panOffsetX    float64
	panOffsetY    float64
	manualOffsetX float64
	manualOffsetY float64

	flipY        bool
	scaleToImage bool
	imageScale   float64
}

// New validates p and returns the corresponding ViewState.
func New(p Params) (ViewState, error) {
	if err := p.Validate(); err != nil {
		return ViewState{}, err
	}
	return ViewState{
		widgetWidth:   p.WidgetWidth,
		widgetHeight:  p.WidgetHeight,
		displayWidth:  p.DisplayWidth,
		displayHeight: p.DisplayHeight,
		zoom:          p.Zoom,
		centerOffsetX: canon(p.CenterOffsetX),
		centerOffsetY: canon(p.CenterOffsetY),
		panOffsetX:    canon(p.PanOffsetX),
		panOffsetY:    canon(p.PanOffsetY),
		manualOffsetX: canon(p.ManualOffsetX),
		manualOffsetY: canon(p.ManualOffsetY),
		flipY:         p.FlipY,
		scaleToImage:  p.ScaleToImage,
		imageScale:    p.ImageScale,
	}, nil
}

// MustNew is like New but panics on invalid parameters. Intended for
// constants and tests.
func MustNew(p Params) ViewState {
	vs, err := New(p)
	if err != nil {
		panic(err)
	}
	return vs
}

// Validate checks p against the ViewState invariants.
func (p Params) Validate() error {
	dims := []struct {
		name string
		v    int
	}{
		{"widget_width", p.WidgetWidth},
		{"widget_height", p.WidgetHeight},
		{"display_width", p.DisplayWidth},
		{"display_height", p.DisplayHeight},
	}
	for _, d := range dims {
		if d.v <= 0 {
			return &ConfigurationError{Field: d.name, Value: float64(d.v), Reason: "must be > 0"}
		}
	}

	nums := []struct {
		name string
		v    float64
	}{
		{"zoom_factor", p.Zoom},
		{"center_offset_x", p.CenterOffsetX},
		{"center_offset_y", p.CenterOffsetY},
		{"pan_offset_x", p.PanOffsetX},
		{"pan_offset_y", p.PanOffsetY},
		{"manual_offset_x", p.ManualOffsetX},
		{"manual_offset_y", p.ManualOffsetY},
		{"image_scale_adjustment", p.ImageScale},
	}
	for _, n := range nums {
		if math.IsNaN(n.v) || math.IsInf(n.v, 0) {
			return &ConfigurationError{Field: n.name, Value: n.v, Reason: "must be finite"}
		}
	}

	if p.Zoom <= 0 {
		return &ConfigurationError{Field: "zoom_factor", Value: p.Zoom, Reason: "must be > 0"}
	}
	if p.ImageScale <= 0 {
		return &ConfigurationError{Field: "image_scale_adjustment", Value: p.ImageScale, Reason: "must be > 0"}
	}
	return nil
}

// canon folds -0 into +0 so that == on ViewState and the bit-level cache key
// agree.
func canon(f float64) float64 {
	if f == 0 {
		return 0
	}
	return f
}

// Params returns the fields of vs.
func (vs ViewState) Params() Params {
	return Params{
		WidgetWidth:   vs.widgetWidth,
		WidgetHeight:  vs.widgetHeight,
		DisplayWidth:  vs.displayWidth,
		DisplayHeight: vs.displayHeight,
		Zoom:          vs.zoom,
		CenterOffsetX: vs.centerOffsetX,
		CenterOffsetY: vs.centerOffsetY,
		PanOffsetX:    vs.panOffsetX,
		PanOffsetY:    vs.panOffsetY,
		ManualOffsetX: vs.manualOffsetX,
		ManualOffsetY: vs.manualOffsetY,
		FlipY:         vs.flipY,
		ScaleToImage:  vs.scaleToImage,
		ImageScale:    vs.imageScale,
	}
}

// IsZero reports whether vs is the zero value, which no successful New call
// ever returns.
func (vs ViewState) IsZero() bool { return vs == ViewState{} }

// WidgetSize returns the rendering surface size in pixels.
func (vs ViewState) WidgetSize() (int, int) { return vs.widgetWidth, vs.widgetHeight }

// DisplaySize returns the size of the content fitted into the widget.
func (vs ViewState) DisplaySize() (int, int) { return vs.displayWidth, vs.displayHeight }

// Zoom returns the user zoom factor. The effective scale also includes
// FitRatio.
func (vs ViewState) Zoom() float64 { return vs.zoom }

// FlipY reports whether data y grows upward on screen.
func (vs ViewState) FlipY() bool { return vs.flipY }

// ScaleToImage reports whether the image scale adjustment is applied.
func (vs ViewState) ScaleToImage() bool { return vs.scaleToImage }

// ImageScale returns the image scale adjustment factor. It only takes
// effect when ScaleToImage is set.
func (vs ViewState) ImageScale() float64 { return vs.imageScale }

// CenterOffset returns the offset that centres the content in the widget.
func (vs ViewState) CenterOffset() (float64, float64) { return vs.centerOffsetX, vs.centerOffsetY }

// PanOffset returns the accumulated user pan in screen pixels.
func (vs ViewState) PanOffset() (float64, float64) { return vs.panOffsetX, vs.panOffsetY }

// ManualOffset returns the fine-tuning offset, independent of panning.
func (vs ViewState) ManualOffset() (float64, float64) { return vs.manualOffsetX, vs.manualOffsetY }

// FitRatio is the scale that fits the display content inside the widget
// while preserving aspect ratio.
func (vs ViewState) FitRatio() float64 {
	return FitRatio(vs.widgetWidth, vs.widgetHeight, vs.displayWidth, vs.displayHeight)
}

// FitRatio returns min(widgetW/displayW, widgetH/displayH).
func FitRatio(widgetW, widgetH, displayW, displayH int) float64 {
	sx := float64(widgetW) / float64(displayW)
	sy := float64(widgetH) / float64(displayH)
	return math.Min(sx, sy)
}

// CenterFor returns the centering offset that places display content, scaled
// by zoom and the fit ratio, in the middle of the widget. With flipY the
// negated Y axis is shifted down by the scaled display height so that data
// y in [0, displayH] lands inside the widget.
func CenterFor(widgetW, widgetH, displayW, displayH int, zoom float64, flipY bool) (float64, float64) {
	scale := zoom * FitRatio(widgetW, widgetH, displayW, displayH)
	cx := (float64(widgetW) - float64(displayW)*scale) / 2
	cy := (float64(widgetH) - float64(displayH)*scale) / 2
	if flipY {
		cy += float64(displayH) * scale
	}
	return cx, cy
}

// Default returns a safe fallback view for a widget: zoom 1, display equal
// to the widget, no offsets. Hosts use it when building a ViewState from
// live widget values fails. Non-positive sizes are raised to 1.
func Default(widgetW, widgetH int) ViewState {
	if widgetW <= 0 {
		widgetW = 1
	}
	if widgetH <= 0 {
		widgetH = 1
	}
	return MustNew(Params{
		WidgetWidth:   widgetW,
		WidgetHeight:  widgetH,
		DisplayWidth:  widgetW,
		DisplayHeight: widgetH,
		Zoom:          1,
		ImageScale:    1,
	})
}
