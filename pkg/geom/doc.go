// Package geom defines the point and polygon types shared by the generator,
// the subdivider and every rendering surface.
//
// # Points
//
// A [Point] carries device-space coordinates plus a Variance: the standard
// deviation used when the point takes part in the next midpoint
// displacement. Variance is not fixed at creation; each subdivision pass
// derives the new midpoint's variance from its neighbors.
//
// # Polygons
//
// A [Polygon] is an ordered, implicitly closed sequence of points. Order
// defines edge adjacency and the draw path. Polygons are treated as values:
// nothing in this module mutates a polygon it receives, every operation
// returns a fresh slice.
//
// # Base shapes
//
// [CreatePolygon] builds the regular N-gon a painting starts from:
//
//	src := random.New(42)
//	base := geom.CreatePolygon(geom.Point2D{X: 100, Y: 100}, 50, 5, src)
//
// Degenerate input (zero radius, zero facets) yields an empty polygon, which
// callers treat as "nothing to draw".
package geom
