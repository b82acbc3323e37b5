package edit

import (
	"bytes"
	"errors"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/transform"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/view"
)

func testTransform(t *testing.T) *transform.Transform {
	t.Helper()
	vs, err := view.New(view.Params{
		WidgetWidth:   800,
		WidgetHeight:  600,
		DisplayWidth:  800,
		DisplayHeight: 600,
		Zoom:          2,
		FlipY:         true,
		ImageScale:    1,
	})
	if err != nil {
		t.Fatalf("view.New failed: %v", err)
	}
	return transform.New(vs)
}

func testCurve(n int) *curve.Curve {
	pts := make([]curve.Point, n)
	for i := range pts {
		pts[i] = curve.Point{Frame: i + 1, Pos: curve.Vec{X: float64(10 * i), Y: float64(i * i)}}
	}
	return &curve.Curve{Name: "c", Points: pts}
}

func testExecutor(t *testing.T, cfg *Config) (*Executor, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	e, err := NewExecutor(cfg, log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("NewExecutor failed: %v", err)
	}
	return e, &buf
}

// shiftAll declares a single-point selection but moves every point.
type shiftAll struct{}

func (shiftAll) Name() string     { return "shift-all" }
func (shiftAll) Selection() []int { return []int{4} }
func (shiftAll) Apply(p []curve.Point) ([]curve.Point, error) {
	return curve.Offset(p, nil, 5, 0)
}

type failing struct{}

func (failing) Name() string     { return "failing" }
func (failing) Selection() []int { return []int{1} }
func (failing) Apply([]curve.Point) ([]curve.Point, error) {
	return nil, errors.New("boom")
}

func TestExecuteSelectionIsStable(t *testing.T) {
	tr := testTransform(t)
	c := testCurve(10)
	orig := c.Clone()
	e, logs := testExecutor(t, nil)

	res, err := e.Execute(c, tr, OffsetCommand{Indices: []int{3, 4, 5}, DX: 7, DY: -2})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !res.Stable {
		t.Fatalf("expected stable result, got %s", res)
	}
	if res.Compared != 3 {
		t.Errorf("expected 3 reference points, got %d", res.Compared)
	}
	if got := c.Points[4].Pos; got != orig.Points[4].Pos.Add(curve.Vec{X: 7, Y: -2}) {
		t.Errorf("point 4 = %v, not offset", got)
	}
	if c.Points[0] != orig.Points[0] {
		t.Errorf("point 0 changed: %v", c.Points[0])
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected log output: %q", logs.String())
	}
	if e.History.Len() != 1 || e.History.Names()[0] != "offset" {
		t.Errorf("history = %v", e.History.Names())
	}
}

func TestExecuteReportsDrift(t *testing.T) {
	tr := testTransform(t)
	c := testCurve(10)
	e, logs := testExecutor(t, nil)

	res, err := e.Execute(c, tr, shiftAll{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Stable {
		t.Fatal("expected drift to be detected")
	}
	// 5 data units at zoom 2 is 10px.
	for id, d := range res.Displacements {
		if d < 9.999 || d > 10.001 {
			t.Errorf("%s displaced %.3fpx, want 10", id, d)
		}
	}
	if !strings.Contains(logs.String(), "shift-all") {
		t.Errorf("expected drift to be logged, got %q", logs.String())
	}
	if c.Points[0].Pos.X != 5 {
		t.Errorf("drift must not block the edit, point 0 = %v", c.Points[0].Pos)
	}
}

func TestExecuteErrorLeavesCurve(t *testing.T) {
	tr := testTransform(t)
	c := testCurve(6)
	orig := c.Clone()
	e, _ := testExecutor(t, nil)

	if _, err := e.Execute(c, tr, failing{}); err == nil {
		t.Fatal("expected error")
	}
	for i := range orig.Points {
		if c.Points[i] != orig.Points[i] {
			t.Fatalf("point %d changed after failed command", i)
		}
	}
	if e.History.CanUndo() {
		t.Error("failed command recorded in history")
	}
}

func TestBuiltinCommands(t *testing.T) {
	tr := testTransform(t)
	center := curve.Vec{X: 0, Y: 0}
	tests := []struct {
		name string
		cmd  Command
	}{
		{"smooth", SmoothCommand{Indices: []int{2, 3, 4}, Window: 3}},
		{"filter", FilterCommand{Indices: []int{2, 3}, Window: 3}},
		{"offset", OffsetCommand{Indices: []int{5}, DX: 1}},
		{"scale", ScaleCommand{Indices: []int{3, 4}, SX: 2, SY: 2}},
		{"scale-pivot", ScaleCommand{Indices: []int{3, 4}, SX: 2, SY: 2, Center: &center}},
		{"rotate", RotateCommand{Indices: []int{6, 7}, Degrees: 90}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCurve(10)
			e, _ := testExecutor(t, nil)
			res, err := e.Execute(c, tr, tt.cmd)
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if !res.Stable {
				t.Errorf("unselected points moved: %s", res)
			}
			if len(c.Points) != 10 {
				t.Errorf("got %d points, want 10", len(c.Points))
			}
		})
	}
}

func TestUndoRedo(t *testing.T) {
	tr := testTransform(t)
	c := testCurve(8)
	orig := c.Clone()
	e, _ := testExecutor(t, nil)

	if _, err := e.Undo(c, tr); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
	if _, err := e.Execute(c, tr, OffsetCommand{Indices: []int{2}, DY: 3}); err != nil {
		t.Fatal(err)
	}
	edited := c.Clone()

	res, err := e.Undo(c, tr)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !res.Stable {
		t.Errorf("undo moved unrelated points: %s", res)
	}
	if c.Points[2] != orig.Points[2] {
		t.Errorf("undo did not restore point 2: %v", c.Points[2])
	}
	if !e.History.CanRedo() {
		t.Fatal("expected redo to be available")
	}

	if _, err := e.Redo(c, tr); err != nil {
		t.Fatalf("Redo failed: %v", err)
	}
	if c.Points[2] != edited.Points[2] {
		t.Errorf("redo did not reapply point 2: %v", c.Points[2])
	}
	if _, err := e.Redo(c, tr); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestHistoryDepth(t *testing.T) {
	tr := testTransform(t)
	c := testCurve(5)
	e, _ := testExecutor(t, &Config{Threshold: 1, HistoryDepth: 2})

	for i := 0; i < 4; i++ {
		if _, err := e.Execute(c, tr, OffsetCommand{Indices: []int{1}, DX: 1}); err != nil {
			t.Fatal(err)
		}
	}
	if e.History.Len() != 2 {
		t.Errorf("history length = %d, want 2", e.History.Len())
	}

	// A new command after undo drops the redo stack.
	if _, err := e.Undo(c, tr); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Execute(c, tr, OffsetCommand{Indices: []int{1}, DX: 1}); err != nil {
		t.Fatal(err)
	}
	if e.History.CanRedo() {
		t.Error("redo stack not cleared by new command")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{Threshold: -1, HistoryDepth: 0}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Threshold != DefaultConfig().Threshold || cfg.HistoryDepth != 100 {
		t.Errorf("Validate did not apply defaults: %+v", cfg)
	}
}

func TestConfigRejectsNonFiniteThreshold(t *testing.T) {
	for _, th := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		cfg := &Config{Threshold: th, HistoryDepth: 10}
		if err := cfg.Validate(); err == nil {
			t.Errorf("Validate accepted threshold %v", th)
		}
		if _, err := NewExecutor(&Config{Threshold: th}, nil); err == nil {
			t.Errorf("NewExecutor accepted threshold %v", th)
		}
	}
}
