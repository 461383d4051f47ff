package deform

import (
	"math/bits"

	"github.com/matzehuels/bleed/pkg/errors"
	"github.com/matzehuels/bleed/pkg/geom"
	"github.com/matzehuels/bleed/pkg/random"
)

// DefaultMaxPoints caps the size of any polygon a Deformer produces.
const DefaultMaxPoints = 1 << 20

// Deformer subdivides polygons with a fixed strategy and random source.
// It is not safe for concurrent use; the source is shared across calls.
type Deformer struct {
	Strategy  Strategy
	Source    random.Source
	MaxPoints int
}

// Option configures a Deformer.
type Option func(*Deformer)

// WithStrategy sets the midpoint strategy.
func WithStrategy(s Strategy) Option {
	return func(d *Deformer) {
		if s != nil {
			d.Strategy = s
		}
	}
}

// WithMaxPoints sets the point ceiling. Non-positive values keep the default.
func WithMaxPoints(n int) Option {
	return func(d *Deformer) {
		if n > 0 {
			d.MaxPoints = n
		}
	}
}

// New returns a Deformer using [VariancePropagating] and [DefaultMaxPoints].
func New(src random.Source, opts ...Option) *Deformer {
	d := &Deformer{
		Strategy:  VariancePropagating{},
		Source:    src,
		MaxPoints: DefaultMaxPoints,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deform performs one subdivision pass and returns a polygon twice as long.
// Each edge A→C contributes A and its new midpoint B; C is emitted as the
// start of the following edge, so the midpoints sit at every odd index.
// Polygons with fewer than two points have no edges and yield an empty
// polygon. The input is not modified.
func (d *Deformer) Deform(p geom.Polygon, radius float64) geom.Polygon {
	if len(p) < 2 {
		return geom.Polygon{}
	}
	out := make(geom.Polygon, 0, 2*len(p))
	for i, a := range p {
		c := p[(i+1)%len(p)]
		out = append(out, a, d.strategy().Midpoint(a, c, radius, d.Source))
	}
	return out
}

// Iterate applies n compounding passes, each on the previous pass's full
// output. n <= 0 returns p unchanged. If the result would exceed MaxPoints,
// Iterate returns an ErrCodeLimitExceeded error without doing any work.
func (d *Deformer) Iterate(p geom.Polygon, radius float64, n int) (geom.Polygon, error) {
	if n <= 0 {
		return p, nil
	}
	if len(p) < 2 {
		return geom.Polygon{}, nil
	}
	if size, ok := grownSize(len(p), n); !ok || size > d.maxPoints() {
		return nil, errors.New(errors.ErrCodeLimitExceeded,
			"%d passes over %d points exceeds the %d point ceiling", n, len(p), d.maxPoints())
	}
	for range n {
		p = d.Deform(p, radius)
	}
	return p, nil
}

// Layers returns one polygon per layer, each an independent Iterate of base
// at the given depth. Unlike Iterate, layer count does not grow point count.
func (d *Deformer) Layers(base geom.Polygon, radius float64, layers, depth int) ([]geom.Polygon, error) {
	if layers <= 0 {
		return nil, nil
	}
	out := make([]geom.Polygon, 0, layers)
	for range layers {
		layer, err := d.Iterate(base, radius, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, layer)
	}
	return out, nil
}

func (d *Deformer) strategy() Strategy {
	if d.Strategy == nil {
		return VariancePropagating{}
	}
	return d.Strategy
}

func (d *Deformer) maxPoints() int {
	if d.MaxPoints <= 0 {
		return DefaultMaxPoints
	}
	return d.MaxPoints
}

// grownSize returns l·2ⁿ, or false if it overflows an int.
func grownSize(l, n int) (int, bool) {
	if n >= bits.UintSize-1 || bits.Len(uint(l))+n >= bits.UintSize-1 {
		return 0, false
	}
	return l << n, true
}

// DeformPolygon runs a single [VariancePropagating] pass.
func DeformPolygon(p geom.Polygon, radius float64, src random.Source) geom.Polygon {
	return New(src).Deform(p, radius)
}

// IterativelyDeformPolygon runs n compounding [VariancePropagating] passes.
// A request over [DefaultMaxPoints] returns p unchanged.
func IterativelyDeformPolygon(p geom.Polygon, radius float64, n int, src random.Source) geom.Polygon {
	out, err := New(src).Iterate(p, radius, n)
	if err != nil {
		return p
	}
	return out
}
