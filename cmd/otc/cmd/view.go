package cmd

import (
	"fmt"
	"image"
	"io"
	"log"
	"math"
	"os"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/edit"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/render"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/session"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/stability"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/trackdata"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/transform"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/view"
)

var viewCmd = &cobra.Command{
	Use:   "view <track_file>",
	Short: "View and edit a track in an interactive viewer",
	Long: `Opens a track in a Gio-based viewer.

Controls:
  Left Drag         - Pan
  Left Click        - Select / deselect point
  Shift + Drag      - Add points inside a rectangle to the selection
  Scroll Wheel      - Zoom at cursor
  F                 - Flip Y axis
  S                 - Smooth selection
  U                 - Undo
  W                 - Write tracks and session
  Space             - Reset view
  Q / Escape        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	filename := args[0]

	c, curves, err := loadTrack(filename)
	if err != nil {
		return err
	}
	vs, err := loadView(c)
	if err != nil {
		return err
	}
	exec, err := edit.NewExecutor(&edit.Config{Threshold: cfg.Threshold, HistoryDepth: cfg.HistoryDepth}, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Loaded %s: %d tracks, showing %s (%d points)\n", filename, len(curves), c.Name, c.Len())
	if first, last, ok := c.FrameRange(); ok {
		fmt.Printf("  Frames: %d-%d\n", first, last)
	}

	v := &viewer{
		filename: filename,
		curve:    c,
		curves:   curves,
		initial:  vs,
		vs:       vs,
		renderer: render.NewRenderer(transform.NewCache(cfg.CacheCapacity)),
		exec:     exec,
		drift:    stability.NewTracker(log.New(io.Discard, "", 0)),
		selected: make(map[int]bool),
	}
	if sessionPath == "" {
		if origin, ok := fitOrigin(c); ok {
			v.origin = &origin
		}
	}

	go func() {
		w := new(app.Window)
		ww, wh := vs.WidgetSize()
		w.Option(app.Title("OpenTraceCurve - " + filename))
		w.Option(app.Size(unit.Dp(ww), unit.Dp(wh)))

		if err := v.run(w); err != nil {
			log.Fatal(err)
		}
		if cfg.Verbose {
			logger.Printf("cache: %+v", v.renderer.Cache.Stats())
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

type viewer struct {
	filename string
	curve    *curve.Curve
	curves   []*curve.Curve

	initial view.ViewState
	vs      view.ViewState
	shown   *transform.Transform // transform of the last painted frame
	origin  *curve.Vec           // fitted data origin; nil for session views

	renderer *render.Renderer
	exec     *edit.Executor
	drift    *stability.Tracker
	selected map[int]bool

	pressed  bool
	dragged  bool
	banding  bool
	last     f32.Point
	pressPos f32.Point
}

func (v *viewer) run(w *app.Window) error {
	var ops op.Ops

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			ops.Reset()
			gtx := app.NewContext(&ops, e)

			v.resize(e.Size)

			// Handle keyboard events
			for {
				ev, ok := gtx.Event(
					key.Filter{Name: key.NameEscape},
					key.Filter{Name: "Q"},
					key.Filter{Name: "F"},
					key.Filter{Name: "S"},
					key.Filter{Name: "U"},
					key.Filter{Name: "W"},
					key.Filter{Name: key.NameSpace},
				)
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					if v.handleKey(ke.Name) {
						return nil
					}
				}
			}

			// Handle mouse events
			for {
				ev, ok := gtx.Event(pointer.Filter{
					Target:  v,
					Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
					ScrollY: pointer.ScrollRange{Min: -1e6, Max: 1e6},
				})
				if !ok {
					break
				}
				if pe, ok := ev.(pointer.Event); ok {
					v.handlePointer(pe)
				}
			}

			// One transform for everything painted in this frame.
			t := v.renderer.Frame(v.vs)
			v.shown = t

			paint.Fill(&ops, render.ColorBackground)
			area := clip.Rect(image.Rectangle{Max: e.Size}).Push(&ops)
			event.Op(&ops, v)
			area.Pop()

			for _, other := range v.curves {
				if other != v.curve {
					v.renderer.Draw(&ops, t, other, nil)
				}
			}
			v.renderer.Draw(&ops, t, v.curve, v.selected)
			if v.banding {
				paint.FillShape(&ops, render.ColorBand, clip.Rect(v.band()).Op())
			}

			e.Frame(&ops)
		}
	}
}

// resize keeps the view fitted when the window size changes.
func (v *viewer) resize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	if w, h := v.vs.WidgetSize(); w == size.X && h == size.Y {
		return
	}
	vs, err := resizeView(v.vs, size.X, size.Y, v.origin)
	if err != nil {
		logger.Printf("view: resize to %v: %v", size, err)
		vs = view.Default(size.X, size.Y)
	}
	v.change("resize", vs, nil)
}

func (v *viewer) handleKey(k key.Name) bool {
	switch k {
	case key.NameEscape, "Q":
		return true
	case "F":
		vs, err := toggleFlip(v.vs, v.origin)
		v.change("flip", vs, err)
	case key.NameSpace:
		w, h := v.vs.WidgetSize()
		vs, err := resizeView(v.initial, w, h, v.origin)
		v.change("reset", vs, err)
	case "S":
		v.smoothSelection()
	case "U":
		if v.shown == nil {
			return false
		}
		if _, err := v.exec.Undo(v.curve, v.shown); err != nil {
			logger.Printf("view: %v", err)
		}
	case "W":
		v.save()
	}
	return false
}

func (v *viewer) handlePointer(pe pointer.Event) {
	switch pe.Kind {
	case pointer.Press:
		if pe.Buttons == pointer.ButtonPrimary {
			v.pressed, v.dragged = true, false
			v.banding = pe.Modifiers.Contain(key.ModShift)
			v.last, v.pressPos = pe.Position, pe.Position
		}
	case pointer.Drag:
		if !v.pressed {
			return
		}
		if v.banding {
			v.last = pe.Position
			return
		}
		d := pe.Position.Sub(v.last)
		v.last = pe.Position
		if !v.dragged && math.Hypot(float64(pe.Position.X-v.pressPos.X), float64(pe.Position.Y-v.pressPos.Y)) < 3 {
			return
		}
		v.dragged = true
		v.update(transform.Pan(v.vs, float64(d.X), float64(d.Y)))
	case pointer.Release:
		switch {
		case v.banding:
			v.last = pe.Position
			v.selectBand()
		case v.pressed && !v.dragged:
			v.toggleAt(pe.Position)
		}
		v.pressed, v.banding = false, false
	case pointer.Scroll:
		factor := 1.0 - float64(pe.Scroll.Y)*0.1
		factor = math.Max(0.5, math.Min(2, factor))
		v.update(transform.ZoomAt(v.vs, float64(pe.Position.X), float64(pe.Position.Y), factor))
	}
}

// toggleAt hit-tests against the frame the user clicked on.
func (v *viewer) toggleAt(pos f32.Point) {
	if v.shown == nil {
		return
	}
	idx, ok := render.HitTest(v.shown, v.curve, float64(pos.X), float64(pos.Y), 6)
	if !ok {
		return
	}
	if v.selected[idx] {
		delete(v.selected, idx)
	} else {
		v.selected[idx] = true
	}
}

// band returns the rubber-band rectangle in screen pixels.
func (v *viewer) band() image.Rectangle {
	return image.Rect(int(v.pressPos.X), int(v.pressPos.Y), int(v.last.X), int(v.last.Y))
}

// selectBand adds the points inside the rubber band to the selection.
func (v *viewer) selectBand() {
	if v.shown == nil {
		return
	}
	for _, i := range render.SelectRect(v.shown, v.curve, v.band()) {
		v.selected[i] = true
	}
}

func (v *viewer) smoothSelection() {
	if len(v.selected) == 0 || v.shown == nil {
		return
	}
	indices := make([]int, 0, len(v.selected))
	for i := range v.selected {
		indices = append(indices, i)
	}
	res, err := v.exec.Execute(v.curve, v.shown, edit.SmoothCommand{Indices: indices, Window: cfg.SmoothWindow})
	if err != nil {
		logger.Printf("view: %v", err)
		return
	}
	if cfg.Verbose {
		logger.Printf("view: smoothed %d points: %s", len(indices), res)
	}
}

func (v *viewer) save() {
	if err := trackdata.WriteFile(v.filename, v.curves); err != nil {
		logger.Printf("view: %v", err)
		return
	}
	if sessionPath != "" {
		if err := session.WriteFile(sessionPath, v.vs); err != nil {
			logger.Printf("view: %v", err)
			return
		}
	}
	logger.Printf("view: saved %s", v.filename)
}

// change replaces the view after a resize, flip or reset. With --verbose it
// reports how far the change moved the curve on screen.
func (v *viewer) change(reason string, vs view.ViewState, err error) {
	if err != nil {
		logger.Printf("view: %s: %v", reason, err)
		return
	}
	if cfg.Verbose && v.shown != nil {
		next := v.renderer.Frame(vs)
		logger.Printf("view: %s", describeShift(v.drift, v.curve, v.shown, next, reason))
	}
	v.vs = vs
}

func (v *viewer) update(vs view.ViewState, err error) {
	if err != nil {
		logger.Printf("view: %v", err)
		return
	}
	v.vs = vs
}
