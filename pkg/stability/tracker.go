package stability

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/transform"
)

// DefaultThreshold is the displacement, in screen pixels, above which a
// reference point counts as moved.
const DefaultThreshold = 1.0

// State is the phase of the tracker's operation lifecycle.
type State int

const (
	Idle State = iota
	Capturing
	Verified
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Capturing:
		return "capturing"
	case Verified:
		return "verified"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// PointID identifies a reference point by its role and index in the data.
type PointID struct {
	Label string
	Index int
}

func (id PointID) String() string {
	if id.Label == "" {
		return fmt.Sprintf("#%d", id.Index)
	}
	return fmt.Sprintf("%s#%d", id.Label, id.Index)
}

// ReferenceSet holds the screen positions of the reference points at capture
// time and the Transform they were computed with.
type ReferenceSet struct {
	Transform *transform.Transform
	IDs       []PointID
	Positions map[PointID]curve.Vec
}

// Len returns the number of captured points.
func (r *ReferenceSet) Len() int { return len(r.IDs) }

// Tracker captures and verifies reference points. It is meant for the
// single thread that runs edit operations.
type Tracker struct {
	// Logger receives drift warnings. Nil means log.Default().
	Logger *log.Logger

	state State
}

// NewTracker returns an idle tracker logging to logger.
func NewTracker(logger *log.Logger) *Tracker {
	return &Tracker{Logger: logger}
}

// State returns the current lifecycle phase.
func (tr *Tracker) State() State { return tr.state }

// Reset returns the tracker to Idle.
func (tr *Tracker) Reset() { tr.state = Idle }

func (tr *Tracker) logf(format string, args ...any) {
	if tr.Logger != nil {
		tr.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// ReferenceIndices picks the first, middle and last indices of a sequence of
// n points, skipping excluded indices and duplicates. With exclusions the
// picks are taken among the remaining indices.
func ReferenceIndices(n int, exclude map[int]bool) []PointID {
	candidates := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !exclude[i] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	picks := []PointID{
		{Label: "first", Index: candidates[0]},
		{Label: "middle", Index: candidates[len(candidates)/2]},
		{Label: "last", Index: candidates[len(candidates)-1]},
	}
	seen := make(map[int]bool, 3)
	ids := picks[:0]
	for _, p := range picks {
		if seen[p.Index] {
			continue
		}
		seen[p.Index] = true
		ids = append(ids, p)
	}
	return ids
}

// TrackReferencePoints records the screen positions of the first, middle
// and last points of data under t and moves the tracker to Capturing.
func (tr *Tracker) TrackReferencePoints(data []curve.Point, t *transform.Transform) *ReferenceSet {
	return tr.TrackPoints(data, t, ReferenceIndices(len(data), nil))
}

// TrackPoints records the screen positions of the given points. IDs whose
// index is outside data are ignored.
func (tr *Tracker) TrackPoints(data []curve.Point, t *transform.Transform, ids []PointID) *ReferenceSet {
	ref := &ReferenceSet{
		Transform: t,
		Positions: make(map[PointID]curve.Vec, len(ids)),
	}
	for _, id := range ids {
		if id.Index < 0 || id.Index >= len(data) {
			continue
		}
		ref.IDs = append(ref.IDs, id)
		ref.Positions[id] = t.ApplyPoint(data[id.Index].Pos)
	}
	tr.state = Capturing
	return ref
}

// VerifyReferencePoints re-applies t to the reference points in modified and
// compares them with the captured positions. t should be the Transform held
// since capture; a nil t uses ref.Transform. A reference index missing from
// modified counts as an infinite displacement. The tracker moves to
// Verified.
func (tr *Tracker) VerifyReferencePoints(modified []curve.Point, ref *ReferenceSet, t *transform.Transform, thresholdPx float64) Result {
	if t == nil {
		t = ref.Transform
	}
	res := newResult(thresholdPx)
	if t != ref.Transform {
		res.TransformChanged = t.CacheKey() != ref.Transform.CacheKey()
		if res.TransformChanged {
			tr.logf("stability: verifying with a different transform than the one captured (%v vs %v)",
				t, ref.Transform)
		}
	}

	for _, id := range ref.IDs {
		if id.Index >= len(modified) {
			res.add(id, math.Inf(1))
			continue
		}
		now := t.ApplyPoint(modified[id.Index].Pos)
		res.add(id, now.Dist(ref.Positions[id]))
	}
	res.finish()

	tr.state = Verified
	if !res.Stable {
		tr.logf("stability: reference points moved: %s", res)
	}
	return res
}

// DetectTransformationDrift compares before under beforeT with after under
// afterT point by point. It finds drift caused by the Transform itself
// changing between two renders of the same logical view as well as by data
// edits. Points present in only one set count as infinitely displaced. The
// tracker state is not changed.
func (tr *Tracker) DetectTransformationDrift(before, after []curve.Point, beforeT, afterT *transform.Transform, thresholdPx float64) Result {
	var batch transform.Batch
	sb := batch.TransformPoints(beforeT, before)
	sa := batch.TransformPoints(afterT, after)

	res := newResult(thresholdPx)
	res.TransformChanged = beforeT != afterT && beforeT.CacheKey() != afterT.CacheKey()
	n := max(len(sb), len(sa))
	for i := 0; i < n; i++ {
		id := PointID{Index: i}
		if i >= len(sb) || i >= len(sa) {
			res.add(id, math.Inf(1))
			continue
		}
		res.add(id, sa[i].Pos.Dist(sb[i].Pos))
	}
	res.finish()

	if !res.Stable {
		tr.logf("stability: transformation drift detected: %s", res)
	}
	return res
}

func sortIDs(ids []PointID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Index < ids[j].Index })
}
