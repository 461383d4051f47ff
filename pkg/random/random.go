// Package random provides the seeded uniform source and the Gaussian sampler
// used by polygon generation and subdivision.
//
// Every stochastic step in bleed draws from a [Source]. Production runs use a
// PCG generator seeded from the clock or a --seed flag; tests pass a fixed
// seed so that a "random" painting can be reproduced point for point.
package random

import (
	"math"
	"math/rand/v2"
)

// Source is a uniform random source over [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// New returns a PCG-backed generator seeded with seed.
// The same seed always yields the same sequence.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// open returns a sample in (0, 1]. The logarithm in the Box–Muller
// transform is undefined at 0, so the half-open interval is flipped.
func open(src Source) float64 {
	return 1 - src.Float64()
}

// Gaussian draws from N(mean, stddev²) with the Box–Muller transform.
// A negative stddev is treated as zero and yields mean.
func Gaussian(src Source, mean, stddev float64) float64 {
	if stddev <= 0 {
		// Still consume two samples so sequences stay aligned regardless of stddev.
		src.Float64()
		src.Float64()
		return mean
	}
	u1 := open(src)
	u2 := open(src)
	z0 := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return z0*stddev + mean
}

// Uniform returns a sample in [lo, hi).
func Uniform(src Source, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + src.Float64()*(hi-lo)
}

// IntRange returns an integer in [lo, hi], both ends inclusive.
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	n := int(src.Float64() * float64(hi-lo+1))
	return lo + min(n, hi-lo)
}
