package edit

import (
	"errors"
	"fmt"
	"log"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/stability"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/transform"
)

var (
	ErrNothingToUndo = errors.New("edit: nothing to undo")
	ErrNothingToRedo = errors.New("edit: nothing to redo")
)

// Executor applies commands to curves. Each call takes the Transform of the
// current frame and uses it for the whole operation.
type Executor struct {
	Tracker *stability.Tracker
	History *History

	config *Config
	logger *log.Logger
}

// NewExecutor creates an executor. A nil cfg uses DefaultConfig; a nil
// logger uses log.Default().
func NewExecutor(cfg *Config, logger *log.Logger) (*Executor, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("edit: invalid config: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Executor{
		Tracker: stability.NewTracker(logger),
		History: NewHistory(cfg.HistoryDepth),
		config:  cfg,
		logger:  logger,
	}, nil
}

// Execute runs cmd on c under t. Reference points are taken from the points
// outside cmd's selection; a command over the whole curve has none. On
// success c.Points is replaced and the edit is recorded for undo. Drift is
// reported in the Result and logged, never returned as an error.
func (e *Executor) Execute(c *curve.Curve, t *transform.Transform, cmd Command) (stability.Result, error) {
	sel := cmd.Selection()
	before := c.Points
	res, out, err := e.Tracker.GuardWith(before, t, e.config.Threshold, referenceIDs(len(before), sel),
		func() ([]curve.Point, error) { return cmd.Apply(before) })
	if err != nil {
		return res, fmt.Errorf("edit: %s on %q: %w", cmd.Name(), c.Name, err)
	}

	c.Points = out
	e.History.push(entry{name: cmd.Name(), selection: sel, before: before, after: out})
	if !res.Stable {
		e.logger.Printf("edit: %s on %q displaced unrelated points: %s", cmd.Name(), c.Name, res)
	}
	return res, nil
}

// Undo restores the points from before the last command, verifying under t
// that points outside that command's selection do not move.
func (e *Executor) Undo(c *curve.Curve, t *transform.Transform) (stability.Result, error) {
	h := e.History
	if !h.CanUndo() {
		return stability.Result{Stable: true}, ErrNothingToUndo
	}
	last := h.undo[len(h.undo)-1]
	res := e.restore(c, t, last, last.before)
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, last)
	return res, nil
}

// Redo re-applies the last undone command's result.
func (e *Executor) Redo(c *curve.Curve, t *transform.Transform) (stability.Result, error) {
	h := e.History
	if !h.CanRedo() {
		return stability.Result{Stable: true}, ErrNothingToRedo
	}
	next := h.redo[len(h.redo)-1]
	res := e.restore(c, t, next, next.after)
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, next)
	return res, nil
}

func (e *Executor) restore(c *curve.Curve, t *transform.Transform, en entry, points []curve.Point) stability.Result {
	snapshot := make([]curve.Point, len(points))
	copy(snapshot, points)
	res, out, _ := e.Tracker.GuardWith(c.Points, t, e.config.Threshold, referenceIDs(len(c.Points), en.selection),
		func() ([]curve.Point, error) { return snapshot, nil })
	c.Points = out
	if !res.Stable {
		e.logger.Printf("edit: restoring %s on %q displaced unrelated points: %s", en.name, c.Name, res)
	}
	return res
}

func referenceIDs(n int, selection []int) []stability.PointID {
	if selection == nil {
		return nil
	}
	exclude := make(map[int]bool, len(selection))
	for _, i := range selection {
		exclude[i] = true
	}
	return stability.ReferenceIndices(n, exclude)
}
