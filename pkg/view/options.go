package view

// Option changes one group of fields in a Params. Options are applied by
// WithUpdates to a copy; the source ViewState never changes.
type Option func(*Params)

// WithUpdates returns a new ViewState that differs from vs only in the
// fields touched by opts. The result is validated like New.
func (vs ViewState) WithUpdates(opts ...Option) (ViewState, error) {
	p := vs.Params()
	for _, opt := range opts {
		opt(&p)
	}
	return New(p)
}

// WidgetSize sets the rendering surface size in pixels.
func WidgetSize(w, h int) Option {
	return func(p *Params) { p.WidgetWidth, p.WidgetHeight = w, h }
}

// DisplaySize sets the size of the content fitted into the widget.
func DisplaySize(w, h int) Option {
	return func(p *Params) { p.DisplayWidth, p.DisplayHeight = w, h }
}

// Zoom sets the user zoom factor.
func Zoom(z float64) Option {
	return func(p *Params) { p.Zoom = z }
}

// CenterOffset sets the centring offset directly. See Recenter.
func CenterOffset(x, y float64) Option {
	return func(p *Params) { p.CenterOffsetX, p.CenterOffsetY = x, y }
}

// PanOffset sets the accumulated pan in screen pixels.
func PanOffset(x, y float64) Option {
	return func(p *Params) { p.PanOffsetX, p.PanOffsetY = x, y }
}

// ManualOffset sets the fine-tuning offset in screen pixels.
func ManualOffset(x, y float64) Option {
	return func(p *Params) { p.ManualOffsetX, p.ManualOffsetY = x, y }
}

// FlipY sets whether data y grows upward on screen.
func FlipY(flip bool) Option {
	return func(p *Params) { p.FlipY = flip }
}

// ScaleToImage enables or disables the image scale adjustment and sets its
// factor.
func ScaleToImage(enabled bool, factor float64) Option {
	return func(p *Params) { p.ScaleToImage, p.ImageScale = enabled, factor }
}

// Recenter recomputes the center offset with CenterFor, using the sizes,
// zoom and flip flag as left by the options that precede it.
func Recenter() Option {
	return func(p *Params) {
		if p.WidgetWidth <= 0 || p.WidgetHeight <= 0 || p.DisplayWidth <= 0 || p.DisplayHeight <= 0 {
			return // New reports the bad size
		}
		p.CenterOffsetX, p.CenterOffsetY = CenterFor(p.WidgetWidth, p.WidgetHeight,
			p.DisplayWidth, p.DisplayHeight, p.Zoom, p.FlipY)
	}
}
