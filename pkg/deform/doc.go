// Package deform implements stochastic midpoint subdivision of polygons.
//
// # Overview
//
// Each pass splits every edge A→C of a polygon into A→B→C where B is a
// Gaussian-displaced midpoint. The polygon is closed, so the last edge wraps
// back to the first vertex, and a polygon of length L always becomes one of
// length 2L.
//
// # Strategies
//
// How B is placed is a [Strategy]:
//
//   - [VariancePropagating] (default): B's variance is a random walk around
//     the mean of its neighbors' variances (stddev radius/20), and B is
//     displaced with that variance. Rough edges stay rough, smooth edges stay
//     smooth, which gives the painted look.
//   - [PlainMidpoint]: B's variance is the plain neighbor mean. Roughness
//     decays deterministically instead of wandering.
//
// # Two ways to repeat
//
// [Deformer.Iterate] compounds: every pass subdivides the previous output,
// so point count grows as L·2ⁿ. [Deformer.Layers] builds a layer sequence:
// every layer is an independent Iterate from the same base at a fixed depth,
// which is what the painting driver draws frame by frame.
//
// Because compounding doubles memory each pass, a [Deformer] refuses any
// request whose result would exceed MaxPoints with an
// errors.ErrCodeLimitExceeded error.
//
// # Usage
//
//	d := deform.New(random.New(seed))
//	rough := d.Deform(base, radius)
//	layer, err := d.Iterate(rough, radius/10, 3)
package deform
