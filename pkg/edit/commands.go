// Package edit runs data-mutating commands on curves under a retained
// Transform, verifying with a stability tracker that points outside the
// edited selection keep their screen positions, and keeps undo history.
package edit

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
)

// Command mutates a point sequence. Apply must not modify its input.
type Command interface {
	Name() string
	Apply(points []curve.Point) ([]curve.Point, error)
	// Selection returns the indices the command may move; nil means all.
	Selection() []int
}

// SmoothCommand applies a moving average.
type SmoothCommand struct {
	Indices []int
	Window  int
}

func (c SmoothCommand) Name() string     { return fmt.Sprintf("smooth(%d)", c.Window) }
func (c SmoothCommand) Selection() []int { return c.Indices }
func (c SmoothCommand) Apply(p []curve.Point) ([]curve.Point, error) {
	return curve.Smooth(p, c.Indices, c.Window)
}

// FilterCommand applies a median filter.
type FilterCommand struct {
	Indices []int
	Window  int
}

func (c FilterCommand) Name() string     { return fmt.Sprintf("filter(%d)", c.Window) }
func (c FilterCommand) Selection() []int { return c.Indices }
func (c FilterCommand) Apply(p []curve.Point) ([]curve.Point, error) {
	return curve.Filter(p, c.Indices, c.Window)
}

// OffsetCommand translates the selection.
type OffsetCommand struct {
	Indices []int
	DX, DY  float64
}

func (c OffsetCommand) Name() string     { return "offset" }
func (c OffsetCommand) Selection() []int { return c.Indices }
func (c OffsetCommand) Apply(p []curve.Point) ([]curve.Point, error) {
	return curve.Offset(p, c.Indices, c.DX, c.DY)
}

// ScaleCommand scales the selection about Center, or about the selection
// centroid when Center is nil.
type ScaleCommand struct {
	Indices []int
	SX, SY  float64
	Center  *curve.Vec
}

func (c ScaleCommand) Name() string     { return "scale" }
func (c ScaleCommand) Selection() []int { return c.Indices }
func (c ScaleCommand) Apply(p []curve.Point) ([]curve.Point, error) {
	center, err := pivot(p, c.Indices, c.Center)
	if err != nil {
		return nil, err
	}
	return curve.Scale(p, c.Indices, c.SX, c.SY, center)
}

// RotateCommand rotates the selection about Center, or about the selection
// centroid when Center is nil.
type RotateCommand struct {
	Indices []int
	Degrees float64
	Center  *curve.Vec
}

func (c RotateCommand) Name() string     { return "rotate" }
func (c RotateCommand) Selection() []int { return c.Indices }
func (c RotateCommand) Apply(p []curve.Point) ([]curve.Point, error) {
	center, err := pivot(p, c.Indices, c.Center)
	if err != nil {
		return nil, err
	}
	return curve.Rotate(p, c.Indices, c.Degrees, center)
}

func pivot(p []curve.Point, indices []int, center *curve.Vec) (curve.Vec, error) {
	if center != nil {
		return *center, nil
	}
	return curve.SelectionCenter(p, indices)
}
