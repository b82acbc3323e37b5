package stability

import (
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/curve"
	"github.com/OpenTraceLab/OpenTraceCurve/pkg/transform"
)

// Scope holds one Transform and one ReferenceSet for the duration of a
// mutating operation. Obtain it with Begin and close it with End.
type Scope struct {
	tracker   *Tracker
	transform *transform.Transform
	ref       *ReferenceSet
	threshold float64

	done   bool
	result Result
}

// Begin captures reference points of data under t. Callers must use
// Scope.Transform, not a freshly resolved one, for everything they do until
// End.
func (tr *Tracker) Begin(data []curve.Point, t *transform.Transform, thresholdPx float64) *Scope {
	return tr.BeginWith(data, t, thresholdPx, ReferenceIndices(len(data), nil))
}

// BeginWith is Begin with an explicit set of reference points.
func (tr *Tracker) BeginWith(data []curve.Point, t *transform.Transform, thresholdPx float64, ids []PointID) *Scope {
	return &Scope{
		tracker:   tr,
		transform: t,
		ref:       tr.TrackPoints(data, t, ids),
		threshold: thresholdPx,
	}
}

// Transform returns the Transform held by the scope.
func (s *Scope) Transform() *transform.Transform { return s.transform }

// References returns the captured reference set.
func (s *Scope) References() *ReferenceSet { return s.ref }

// End verifies modified against the captured positions. Only the first call
// verifies; later calls return the same Result.
func (s *Scope) End(modified []curve.Point) Result {
	if s.done {
		return s.result
	}
	s.done = true
	s.result = s.tracker.VerifyReferencePoints(modified, s.ref, s.transform, s.threshold)
	return s.result
}

// Guard runs fn between capture and verification. Verification runs on every
// exit path: with fn's output on success, and with data itself when fn
// returns an error or panics (which catches in-place mutation of data). A
// panic is re-raised after verification.
func (tr *Tracker) Guard(data []curve.Point, t *transform.Transform, thresholdPx float64, fn func() ([]curve.Point, error)) (Result, []curve.Point, error) {
	return tr.GuardWith(data, t, thresholdPx, ReferenceIndices(len(data), nil), fn)
}

// GuardWith is Guard with an explicit set of reference points.
func (tr *Tracker) GuardWith(data []curve.Point, t *transform.Transform, thresholdPx float64, ids []PointID, fn func() ([]curve.Point, error)) (res Result, out []curve.Point, err error) {
	scope := tr.BeginWith(data, t, thresholdPx, ids)
	completed := false
	defer func() {
		if completed {
			res = scope.End(out)
		} else {
			res = scope.End(data)
		}
	}()

	out, err = fn()
	if err != nil {
		return res, nil, err
	}
	completed = true
	return res, out, nil
}
