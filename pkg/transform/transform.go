package transform

import (
	"fmt"
	"math"
	"strings"

	"gioui.org/f32"
	"gonum.org/v1/gonum/mat"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/view"
)

// Transform is the resolved, immutable data<->screen mapping for one
// ViewState. The zero value is not usable; construct with New.
type Transform struct {
	vs view.ViewState

	scale        float64
	centerX      float64
	centerY      float64
	panX         float64
	panY         float64
	manualX      float64
	manualY      float64
	imageScale   float64
	flipY        bool
	scaleToImage bool

	// Resolved pipeline constants: screen = data*k + t. Every forward path
	// writes float64(data*k) + t so the product is rounded before the add
	// and no path is fused into an FMA; batch and single results stay
	// bit-identical on every architecture.
	kx, ky float64
	tx, ty float64
}

// New resolves vs into a Transform.
func New(vs view.ViewState) *Transform {
	t := &Transform{
		vs:           vs,
		scale:        vs.Zoom() * vs.FitRatio(),
		imageScale:   vs.ImageScale(),
		flipY:        vs.FlipY(),
		scaleToImage: vs.ScaleToImage(),
	}
	t.centerX, t.centerY = vs.CenterOffset()
	t.panX, t.panY = vs.PanOffset()
	t.manualX, t.manualY = vs.ManualOffset()

	adj := 1.0
	if t.scaleToImage {
		adj = t.imageScale
	}
	sign := 1.0
	if t.flipY {
		sign = -1.0
	}
	t.kx = adj * t.scale
	t.ky = adj * sign * t.scale
	t.tx = t.centerX + t.panX + t.manualX
	t.ty = t.centerY + t.panY + t.manualY
	return t
}

// ViewState returns the state the transform was built from.
func (t *Transform) ViewState() view.ViewState { return t.vs }

// Scale returns the combined zoom and fit-to-display scale.
func (t *Transform) Scale() float64 { return t.scale }

// FlipY reports whether data y grows opposite to screen y.
func (t *Transform) FlipY() bool { return t.flipY }

// Apply maps a data point to screen space.
func (t *Transform) Apply(x, y float64) (float64, float64) {
	return float64(x*t.kx) + t.tx, float64(y*t.ky) + t.ty
}

// ApplyInverse maps a screen point back to data space.
func (t *Transform) ApplyInverse(sx, sy float64) (float64, float64) {
	return (sx - t.tx) / t.kx, (sy - t.ty) / t.ky
}

// ApplyPoint is Apply on a curve.Vec.
func (t *Transform) ApplyPoint(v curve.Vec) curve.Vec {
	x, y := t.Apply(v.X, v.Y)
	return curve.Vec{X: x, Y: y}
}

// InversePoint is ApplyInverse on a curve.Vec.
func (t *Transform) InversePoint(v curve.Vec) curve.Vec {
	x, y := t.ApplyInverse(v.X, v.Y)
	return curve.Vec{X: x, Y: y}
}

// ApplyMany maps src into dst and returns dst. dst is grown if its capacity
// is too small; passing dst[:0] of a reused buffer avoids allocation.
func (t *Transform) ApplyMany(dst, src []curve.Vec) []curve.Vec {
	dst = grow(dst, len(src))
	kx, ky, tx, ty := t.kx, t.ky, t.tx, t.ty
	for i, v := range src {
		dst[i] = curve.Vec{X: float64(v.X*kx) + tx, Y: float64(v.Y*ky) + ty}
	}
	return dst
}

// ScreenDistance converts a data-space length along x to pixels.
func (t *Transform) ScreenDistance(d float64) float64 {
	return math.Abs(d * t.kx)
}

// DataDistance converts a pixel length to a data-space length along x.
func (t *Transform) DataDistance(px float64) float64 {
	return math.Abs(px / t.kx)
}

// Matrix returns the homogeneous 3x3 matrix equivalent of Apply.
func (t *Transform) Matrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		t.kx, 0, t.tx,
		0, t.ky, t.ty,
		0, 0, 1,
	})
}

// Affine2D returns the transform as a gio affine for op.Affine. Precision is
// reduced to float32.
func (t *Transform) Affine2D() f32.Affine2D {
	return f32.NewAffine2D(
		float32(t.kx), 0, float32(t.tx),
		0, float32(t.ky), float32(t.ty),
	)
}

// Key is a cache key derived from the resolved fields of a Transform. It is
// comparable and stable across runs for equal inputs.
type Key [9]uint64

// CacheKey returns the key of t.
func (t *Transform) CacheKey() Key {
	var flags uint64
	if t.flipY {
		flags |= 1
	}
	if t.scaleToImage {
		flags |= 2
	}
	return Key{
		math.Float64bits(t.scale),
		math.Float64bits(t.centerX),
		math.Float64bits(t.centerY),
		math.Float64bits(t.panX),
		math.Float64bits(t.panY),
		math.Float64bits(t.manualX),
		math.Float64bits(t.manualY),
		math.Float64bits(t.imageScale),
		flags,
	}
}

func (k Key) String() string {
	parts := make([]string, len(k))
	for i, v := range k {
		parts[i] = fmt.Sprintf("%016x", v)
	}
	return strings.Join(parts, ":")
}

func (t *Transform) String() string {
	return fmt.Sprintf("Transform{scale=%g center=(%g,%g) pan=(%g,%g) manual=(%g,%g) image=%g/%v flipY=%v}",
		t.scale, t.centerX, t.centerY, t.panX, t.panY, t.manualX, t.manualY,
		t.imageScale, t.scaleToImage, t.flipY)
}

func grow[T any](dst []T, n int) []T {
	if cap(dst) < n {
		return make([]T, n)
	}
	return dst[:n]
}
