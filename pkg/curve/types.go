// Package curve holds the tracking data model edited by the curve view:
// frame-indexed 2D points in data space and the mutations applied to them.
package curve

import (
	"fmt"
	"math"
	"strings"
)

// Vec is a 2D coordinate. Whether it is in data or screen space depends on
// where it came from; the transform package converts between the two.
type Vec struct {
	X float64
	Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Dist returns the Euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Status tags how a tracking point was produced.
type Status int

const (
	StatusNormal Status = iota
	StatusKeyframe
	StatusTracked
	StatusInterpolated
	StatusEndframe
)

var statusNames = map[Status]string{
	StatusNormal:       "normal",
	StatusKeyframe:     "keyframe",
	StatusTracked:      "tracked",
	StatusInterpolated: "interpolated",
	StatusEndframe:     "endframe",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus converts a status keyword (case-insensitive) to a Status.
func ParseStatus(s string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for st, name := range statusNames {
		if name == key {
			return st, nil
		}
	}
	return StatusNormal, fmt.Errorf("curve: unknown point status %q", s)
}

// Point is one tracked position at a given frame.
type Point struct {
	Frame  int
	Pos    Vec
	Status Status
}

// Curve is a named, frame-ordered sequence of tracking points.
type Curve struct {
	Name   string
	Points []Point
}

// Clone returns a deep copy of the curve.
func (c *Curve) Clone() *Curve {
	out := &Curve{Name: c.Name, Points: make([]Point, len(c.Points))}
	copy(out.Points, c.Points)
	return out
}

// Len returns the number of points.
func (c *Curve) Len() int { return len(c.Points) }

// IndexOfFrame returns the index of the point at frame, or -1.
func (c *Curve) IndexOfFrame(frame int) int {
	for i, p := range c.Points {
		if p.Frame == frame {
			return i
		}
	}
	return -1
}

// FrameRange returns the first and last frame numbers. ok is false for an
// empty curve.
func (c *Curve) FrameRange() (first, last int, ok bool) {
	if len(c.Points) == 0 {
		return 0, 0, false
	}
	first, last = c.Points[0].Frame, c.Points[0].Frame
	for _, p := range c.Points[1:] {
		if p.Frame < first {
			first = p.Frame
		}
		if p.Frame > last {
			last = p.Frame
		}
	}
	return first, last, true
}

// Bounds is an axis-aligned box in data space.
type Bounds struct {
	Min Vec
	Max Vec
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the midpoint of the box.
func (b Bounds) Center() Vec {
	return Vec{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// IsEmpty reports whether the box has no area.
func (b Bounds) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// PointBounds returns the bounding box of points. ok is false when points is
// empty.
func PointBounds(points []Point) (b Bounds, ok bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b.Min, b.Max = points[0].Pos, points[0].Pos
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.Pos.X)
		b.Min.Y = math.Min(b.Min.Y, p.Pos.Y)
		b.Max.X = math.Max(b.Max.X, p.Pos.X)
		b.Max.Y = math.Max(b.Max.Y, p.Pos.Y)
	}
	return b, true
}

// Bounds returns the bounding box of the curve's points.
func (c *Curve) Bounds() (Bounds, bool) {
	return PointBounds(c.Points)
}
