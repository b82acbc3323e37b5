// Package stability detects unintended screen displacement of tracking
// points around data-mutating operations.
//
// An operation that edits point data captures a few reference points
// (first, middle and last) under one Transform before it runs, and verifies
// them under the same Transform afterwards. Any reference point whose screen
// position moved more than a pixel threshold is reported as drift. Drift is
// advisory: it is logged and returned as a Result, never as an error, and
// this package never changes data or transforms.
//
// Typical use from an edit command:
//
//	t := cache.GetOrCreate(vs) // one Transform for the whole operation
//	res, out, err := tracker.Guard(points, t, 1.0, func() ([]curve.Point, error) {
//		return curve.Smooth(points, selected, 5)
//	})
//	if !res.Stable {
//		// compensate, retry or record
//	}
package stability
