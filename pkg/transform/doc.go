// Package transform maps tracking coordinates between data space and the
// screen space of the curve view.
//
// # Pipeline
//
// A Transform is built once from a view.ViewState and never changes. Apply
// maps a data point to screen pixels in this fixed order:
//  1. multiply by the image scale adjustment (only when ScaleToImage is set)
//  2. negate y (only when FlipY is set)
//  3. multiply by Scale, which is the zoom factor times the fit-to-display
//     ratio of the view
//  4. add the center offset
//  5. add the pan offset
//  6. add the manual offset
//
// ApplyInverse undoes the same steps in reverse order. The per-axis
// multipliers of steps 1-3 and the sum of the offsets of steps 4-6 are
// resolved at construction, so every call is two multiply-adds per point.
//
// # Caching
//
// Cache resolves ViewStates to Transforms with exact equality and a bounded,
// least-recently-used eviction policy. The renderer asks the cache once per
// paint pass and uses the returned Transform for every point it touches in
// that pass.
//
// # Batches
//
// Batch applies one Transform to whole point slices with a single output
// allocation. Its results are bit-identical to calling Apply per point
// because both paths run the same arithmetic.
//
// # Concurrency
//
// Transform is immutable and may be shared between goroutines. Cache
// serialises access with a mutex.
package transform
