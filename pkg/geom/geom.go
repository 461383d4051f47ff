package geom

import (
	"math"

	"github.com/matzehuels/bleed/pkg/random"
)

// Point2D is a plain coordinate pair.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point is a polygon vertex with its displacement variance.
type Point struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Variance float64 `json:"variance"`
}

// XY drops the variance.
func (p Point) XY() Point2D { return Point2D{X: p.X, Y: p.Y} }

// Polygon is an ordered, implicitly closed vertex sequence.
type Polygon []Point

// Len returns the number of vertices.
func (p Polygon) Len() int { return len(p) }

// Empty reports whether there is nothing to draw.
func (p Polygon) Empty() bool { return len(p) == 0 }

// Clone returns an independent copy.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// Bounds returns the axis-aligned bounding box. An empty polygon returns
// zero points.
func (p Polygon) Bounds() (lo, hi Point2D) {
	if len(p) == 0 {
		return lo, hi
	}
	lo = Point2D{X: math.Inf(1), Y: math.Inf(1)}
	hi = Point2D{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, pt := range p {
		lo.X, lo.Y = min(lo.X, pt.X), min(lo.Y, pt.Y)
		hi.X, hi.Y = max(hi.X, pt.X), max(hi.Y, pt.Y)
	}
	return lo, hi
}

// CreatePolygon builds a regular polygon with facets vertices around center.
//
// Coordinates are rounded half up and floored at 0 (negative coordinates are
// pulled onto the axis; there is no upper clamp). Each vertex gets a variance
// drawn uniformly from [0, radius/3).
//
// A non-positive radius or facet count, or a non-finite center or radius,
// returns an empty polygon.
func CreatePolygon(center Point2D, radius float64, facets int, src random.Source) Polygon {
	if facets <= 0 || !(radius > 0) || !finite(radius) || !finite(center.X) || !finite(center.Y) {
		return Polygon{}
	}

	step := 2 * math.Pi / float64(facets)
	poly := make(Polygon, 0, facets)
	for i := range facets {
		angle := step * float64(i)
		poly = append(poly, Point{
			X:        max(0, roundHalfUp(center.X+radius*math.Cos(angle))),
			Y:        max(0, roundHalfUp(center.Y+radius*math.Sin(angle))),
			Variance: random.Uniform(src, 0, radius/3),
		})
	}
	return poly
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
