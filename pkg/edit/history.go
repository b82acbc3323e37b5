package edit

import "github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"

// entry records one executed command.
type entry struct {
	name      string
	selection []int
	before    []curve.Point
	after     []curve.Point
}

// History is a bounded undo/redo stack of point snapshots.
type History struct {
	depth int
	undo  []entry
	redo  []entry
}

// NewHistory creates a history keeping at most depth undo entries.
func NewHistory(depth int) *History {
	if depth < 1 {
		depth = 1
	}
	return &History{depth: depth}
}

func (h *History) push(e entry) {
	h.undo = append(h.undo, e)
	if len(h.undo) > h.depth {
		h.undo = h.undo[len(h.undo)-h.depth:]
	}
	h.redo = nil
}

// CanUndo reports whether there is something to undo.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether there is something to redo.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of undo entries.
func (h *History) Len() int { return len(h.undo) }

// Names returns the undo entries' command names, oldest first.
func (h *History) Names() []string {
	names := make([]string, len(h.undo))
	for i, e := range h.undo {
		names[i] = e.name
	}
	return names
}
