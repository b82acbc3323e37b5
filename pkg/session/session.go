// Package session reads and writes view session files, which persist the
// view parameters of the curve view as an S-expression:
//
//	(view
//	  (widget 1280 720)
//	  (display 1920 1080)
//	  (zoom 1.5)
//	  (center 12 -40)      ; optional, computed when absent
//	  (pan 10 -4)
//	  (manual 0.5 0)
//	  (flip_y yes)
//	  (scale_to_image no 1))
package session

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/session/sexpr"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/view"
)

// Parse reads a session from r and returns the validated ViewState. Missing
// optional entries take their defaults: zoom 1, no offsets, no flip, image
// scale 1, and a center offset from view.CenterFor.
func Parse(r io.Reader) (view.ViewState, error) {
	exprs, err := sexpr.Parse(r)
	if err != nil {
		return view.ViewState{}, fmt.Errorf("session: %w", err)
	}
	if len(exprs) != 1 {
		return view.ViewState{}, fmt.Errorf("session: expected one (view ...) form, got %d", len(exprs))
	}
	root, ok := exprs[0].(*sexpr.List)
	if !ok || root.Key() != "view" {
		return view.ViewState{}, fmt.Errorf("session: top-level form is not (view ...)")
	}

	p := view.Params{Zoom: 1, ImageScale: 1}
	d := decoder{root: root}

	d.ints("widget", true, &p.WidgetWidth, &p.WidgetHeight)
	d.ints("display", false, &p.DisplayWidth, &p.DisplayHeight)
	if p.DisplayWidth == 0 && p.DisplayHeight == 0 {
		p.DisplayWidth, p.DisplayHeight = p.WidgetWidth, p.WidgetHeight
	}
	d.floats("zoom", &p.Zoom)
	d.floats("pan", &p.PanOffsetX, &p.PanOffsetY)
	d.floats("manual", &p.ManualOffsetX, &p.ManualOffsetY)
	d.flag("flip_y", &p.FlipY)
	if d.flag("scale_to_image", &p.ScaleToImage) {
		d.floatAt("scale_to_image", 1, &p.ImageScale)
	}

	if _, ok := root.Find("center"); ok {
		d.floats("center", &p.CenterOffsetX, &p.CenterOffsetY)
	} else if d.err == nil {
		if err := p.Validate(); err != nil {
			return view.ViewState{}, fmt.Errorf("session: %w", err)
		}
		p.CenterOffsetX, p.CenterOffsetY = view.CenterFor(p.WidgetWidth, p.WidgetHeight,
			p.DisplayWidth, p.DisplayHeight, p.Zoom, p.FlipY)
	}
	if d.err != nil {
		return view.ViewState{}, fmt.Errorf("session: %w", d.err)
	}

	vs, err := view.New(p)
	if err != nil {
		return view.ViewState{}, fmt.Errorf("session: %w", err)
	}
	return vs, nil
}

// ParseFile reads a session from filename.
func ParseFile(filename string) (view.ViewState, error) {
	file, err := os.Open(filename)
	if err != nil {
		return view.ViewState{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Write serialises vs as a session. The center offset is always written so
// the file reproduces vs exactly.
func Write(w io.Writer, vs view.ViewState) error {
	p := vs.Params()
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "(view")
	fmt.Fprintf(bw, "  (widget %d %d)\n", p.WidgetWidth, p.WidgetHeight)
	fmt.Fprintf(bw, "  (display %d %d)\n", p.DisplayWidth, p.DisplayHeight)
	fmt.Fprintf(bw, "  (zoom %s)\n", num(p.Zoom))
	fmt.Fprintf(bw, "  (center %s %s)\n", num(p.CenterOffsetX), num(p.CenterOffsetY))
	fmt.Fprintf(bw, "  (pan %s %s)\n", num(p.PanOffsetX), num(p.PanOffsetY))
	fmt.Fprintf(bw, "  (manual %s %s)\n", num(p.ManualOffsetX), num(p.ManualOffsetY))
	fmt.Fprintf(bw, "  (flip_y %s)\n", yesNo(p.FlipY))
	fmt.Fprintf(bw, "  (scale_to_image %s %s))\n", yesNo(p.ScaleToImage), num(p.ImageScale))
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("session: write failed: %w", err)
	}
	return nil
}

// WriteFile writes vs to filename.
func WriteFile(filename string, vs view.ViewState) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, vs); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func num(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// decoder keeps the first error so field reads can be chained.
type decoder struct {
	root *sexpr.List
	err  error
}

func (d *decoder) atoms(key string, n int, required bool) ([]*sexpr.Atom, bool) {
	if d.err != nil {
		return nil, false
	}
	node, ok := d.root.Find(key)
	if !ok {
		if required {
			d.err = fmt.Errorf("%s: missing (%s ...)", d.root.At, key)
		}
		return nil, false
	}
	atoms := node.Atoms()
	if len(atoms) < n {
		d.err = fmt.Errorf("%s: (%s ...) needs %d values, got %d", node.At, key, n, len(atoms))
		return nil, false
	}
	return atoms, true
}

func (d *decoder) fail(key string, err error) {
	d.err = fmt.Errorf("(%s ...): %w", key, err)
}

func (d *decoder) ints(key string, required bool, dst ...*int) {
	atoms, ok := d.atoms(key, len(dst), required)
	if !ok {
		return
	}
	for i, p := range dst {
		v, err := atoms[i].Int()
		if err != nil {
			d.fail(key, err)
			return
		}
		*p = v
	}
}

func (d *decoder) floats(key string, dst ...*float64) {
	atoms, ok := d.atoms(key, len(dst), false)
	if !ok {
		return
	}
	for i, p := range dst {
		v, err := atoms[i].Float()
		if err != nil {
			d.fail(key, err)
			return
		}
		*p = v
	}
}

func (d *decoder) floatAt(key string, index int, dst *float64) {
	atoms, ok := d.atoms(key, 0, false)
	if !ok || index >= len(atoms) {
		return
	}
	v, err := atoms[index].Float()
	if err != nil {
		d.fail(key, err)
		return
	}
	*dst = v
}

// flag reads a yes/no value and reports whether the entry was present.
func (d *decoder) flag(key string, dst *bool) bool {
	atoms, ok := d.atoms(key, 1, false)
	if !ok {
		return false
	}
	a := atoms[0]
	if a.Kind != sexpr.Bool {
		d.fail(key, &sexpr.SyntaxError{At: a.At, Msg: fmt.Sprintf("expected yes or no, got %q", a.Text)})
		return true
	}
	*dst = a.Bool
	return true
}
