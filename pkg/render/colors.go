package render

import (
	"image/color"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
)

var (
	ColorBackground = color.NRGBA{R: 24, G: 24, B: 28, A: 255}
	ColorCurve      = color.NRGBA{R: 120, G: 160, B: 220, A: 255}
	ColorSelected   = color.NRGBA{R: 255, G: 255, B: 0, A: 255}
	ColorBand       = color.NRGBA{R: 255, G: 255, B: 0, A: 48} // rubber-band selection fill
)

// statusColors maps point status to marker colour.
var statusColors = map[curve.Status]color.NRGBA{
	curve.StatusNormal:       {R: 200, G: 200, B: 200, A: 255},
	curve.StatusKeyframe:     {R: 255, G: 120, B: 60, A: 255},  // orange
	curve.StatusTracked:      {R: 90, G: 200, B: 120, A: 255},  // green
	curve.StatusInterpolated: {R: 150, G: 150, B: 255, A: 255}, // lavender
	curve.StatusEndframe:     {R: 220, G: 60, B: 60, A: 255},   // red
}

// StatusColor returns the marker colour for s.
func StatusColor(s curve.Status) color.NRGBA {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return statusColors[curve.StatusNormal]
}
