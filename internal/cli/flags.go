package cli

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/matzehuels/bleed/pkg/deform"
	"github.com/matzehuels/bleed/pkg/painting"
)

// paintingFlags are the painting settings shared by paint and animate.
// Only flags given on the command line override the config file.
type paintingFlags struct {
	seed       uint64
	width      float64
	height     float64
	radiusMin  float64
	radiusMax  float64
	facetsMin  int
	facetsMax  int
	layers     int
	iterations int
	alpha      float64
	strategy   string
	background string
	frameDelay time.Duration
	cycleDelay time.Duration
	cycles     int
}

func (f *paintingFlags) register(fs *pflag.FlagSet) {
	d := painting.DefaultConfig()
	fs.Uint64VarP(&f.seed, "seed", "s", 0, "random seed (0 picks one)")
	fs.Float64Var(&f.width, "width", d.Width, "canvas width")
	fs.Float64Var(&f.height, "height", d.Height, "canvas height")
	fs.Float64Var(&f.radiusMin, "radius-min", d.RadiusMin, "smallest shape radius")
	fs.Float64Var(&f.radiusMax, "radius-max", d.RadiusMax, "largest shape radius")
	fs.IntVar(&f.facetsMin, "facets-min", d.FacetsMin, "fewest polygon sides")
	fs.IntVar(&f.facetsMax, "facets-max", d.FacetsMax, "most polygon sides")
	fs.IntVarP(&f.layers, "layers", "l", d.Layers, "translucent layers per shape")
	fs.IntVar(&f.iterations, "iterations", d.IterationsPerLayer, "subdivision passes per layer")
	fs.Float64Var(&f.alpha, "alpha", d.Alpha, "layer opacity in (0, 1]")
	fs.StringVar(&f.strategy, "strategy", d.Strategy, "variance strategy: "+deform.StrategyVariance+" or "+deform.StrategyPlain)
	fs.StringVar(&f.background, "background", d.Background, "canvas background color")
	fs.DurationVar(&f.frameDelay, "frame-delay", d.FrameDelay.Std(), "pause between layers (animate)")
	fs.DurationVar(&f.cycleDelay, "cycle-delay", d.CycleDelay.Std(), "pause between shapes (animate)")
	fs.IntVar(&f.cycles, "cycles", d.Cycles, "shapes to animate before stopping, 0 runs forever")
}

// apply copies every flag the user set onto cfg.
func (f *paintingFlags) apply(fs *pflag.FlagSet, cfg *painting.Config) {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("seed", func() { cfg.Seed = f.seed })
	set("width", func() { cfg.Width = f.width })
	set("height", func() { cfg.Height = f.height })
	set("radius-min", func() { cfg.RadiusMin = f.radiusMin })
	set("radius-max", func() { cfg.RadiusMax = f.radiusMax })
	set("facets-min", func() { cfg.FacetsMin = f.facetsMin })
	set("facets-max", func() { cfg.FacetsMax = f.facetsMax })
	set("layers", func() { cfg.Layers = f.layers })
	set("iterations", func() { cfg.IterationsPerLayer = f.iterations })
	set("alpha", func() { cfg.Alpha = f.alpha })
	set("strategy", func() { cfg.Strategy = f.strategy })
	set("background", func() { cfg.Background = f.background })
	set("frame-delay", func() { cfg.FrameDelay = painting.Duration(f.frameDelay) })
	set("cycle-delay", func() { cfg.CycleDelay = painting.Duration(f.cycleDelay) })
	set("cycles", func() { cfg.Cycles = f.cycles })
}
