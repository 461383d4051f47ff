package deform

import (
	"math"
	"strings"

	"github.com/matzehuels/bleed/pkg/errors"
	"github.com/matzehuels/bleed/pkg/geom"
	"github.com/matzehuels/bleed/pkg/random"
)

// Strategy names accepted by [StrategyByName].
const (
	StrategyVariance = "variance"
	StrategyPlain    = "plain"
)

// Strategy places the new midpoint of edge a→c.
type Strategy interface {
	Midpoint(a, c geom.Point, radius float64, src random.Source) geom.Point
}

// VariancePropagating lets the midpoint variance random-walk around the mean
// of its neighbors with stddev radius/20. The stored variance is the
// magnitude of the draw, so it never goes negative.
type VariancePropagating struct{}

// Midpoint implements [Strategy].
func (VariancePropagating) Midpoint(a, c geom.Point, radius float64, src random.Source) geom.Point {
	v := math.Abs(random.Gaussian(src, (a.Variance+c.Variance)/2, max(radius, 0)/20))
	return geom.Point{
		X:        random.Gaussian(src, (a.X+c.X)/2, v),
		Y:        random.Gaussian(src, (a.Y+c.Y)/2, v),
		Variance: v,
	}
}

// PlainMidpoint displaces the midpoint by the mean neighbor variance and
// passes that mean on unchanged. The radius is ignored.
type PlainMidpoint struct{}

// Midpoint implements [Strategy].
func (PlainMidpoint) Midpoint(a, c geom.Point, _ float64, src random.Source) geom.Point {
	v := max((a.Variance+c.Variance)/2, 0)
	return geom.Point{
		X:        random.Gaussian(src, (a.X+c.X)/2, v),
		Y:        random.Gaussian(src, (a.Y+c.Y)/2, v),
		Variance: v,
	}
}

// StrategyByName resolves a strategy name. The empty name selects
// [VariancePropagating].
func StrategyByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyVariance:
		return VariancePropagating{}, nil
	case StrategyPlain:
		return PlainMidpoint{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidStrategy,
			"unknown deformation strategy %q (must be %q or %q)", name, StrategyVariance, StrategyPlain)
	}
}
