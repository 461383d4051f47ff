package painting

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bleed/pkg/deform"
	"github.com/matzehuels/bleed/pkg/errors"
	"github.com/matzehuels/bleed/pkg/observability"
	"github.com/matzehuels/bleed/pkg/random"
)

// Scheduler runs fn after delay. Implementations must run continuations one
// at a time; the painter never schedules more than one pending frame.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

// FrameState is the explicit continuation state passed from frame to frame.
type FrameState struct {
	Cycle  int            // cycles started so far
	Layer  int            // layers drawn in the current cycle
	Frames int            // frames drawn in total
	Shape  *ShapeInstance // current cycle's shape; nil before the first cycle
}

// cycleDone reports whether the next step has to start a new cycle.
func (s FrameState) cycleDone(layers int) bool {
	return s.Shape == nil || s.Layer >= layers
}

// Option configures a Painter.
type Option func(*Painter)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(p *Painter) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithHooks overrides the globally registered paint hooks.
func WithHooks(h observability.PaintHooks) Option {
	return func(p *Painter) {
		if h != nil {
			p.hooks = h
		}
	}
}

// WithDeformer replaces the deformer built from the config.
func WithDeformer(d *deform.Deformer) Option {
	return func(p *Painter) {
		if d != nil {
			p.deformer = d
		}
	}
}

// Painter draws painting cycles onto a Surface.
type Painter struct {
	cfg      Config
	surface  Surface
	src      random.Source
	deformer *deform.Deformer
	logger   *log.Logger
	hooks    observability.PaintHooks
	started  time.Time
}

// New creates a painter. cfg is expected to be validated; an unknown
// strategy name falls back to the default strategy.
func New(cfg Config, surface Surface, src random.Source, opts ...Option) *Painter {
	strategy, err := deform.StrategyByName(cfg.Strategy)
	if err != nil {
		strategy = deform.VariancePropagating{}
	}
	p := &Painter{
		cfg:      cfg,
		surface:  surface,
		src:      src,
		deformer: deform.New(src, deform.WithStrategy(strategy), deform.WithMaxPoints(cfg.MaxPoints)),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		hooks:    observability.Paint(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Step draws one frame and returns the state and delay for the next one.
// It starts a new cycle when the previous one has used up its layers, and
// returns ErrDone when cfg.Cycles cycles are complete.
func (p *Painter) Step(ctx context.Context, st FrameState) (FrameState, time.Duration, error) {
	if p.cfg.Layers <= 0 {
		return st, 0, errors.New(errors.ErrCodeInvalidConfig, "layers must be positive, got %d", p.cfg.Layers)
	}
	if st.cycleDone(p.cfg.Layers) {
		if p.cfg.Cycles > 0 && st.Cycle >= p.cfg.Cycles {
			return st, 0, ErrDone
		}
		st = p.newCycle(ctx, st)
	}

	layer, err := p.deformer.Iterate(st.Shape.Deformed, st.Shape.Radius*p.cfg.DeformScale, p.cfg.IterationsPerLayer)
	if err != nil {
		return st, 0, err
	}
	DrawPolygon(p.surface, layer, st.Shape.Color)
	p.hooks.OnLayer(ctx, st.Cycle, st.Layer, layer.Len())

	st.Layer++
	st.Frames++
	if st.Layer < p.cfg.Layers {
		return st, p.cfg.FrameDelay.Std(), nil
	}

	elapsed := time.Since(p.started)
	p.logger.Debug("Cycle complete", "cycle", st.Cycle, "layers", st.Layer, "elapsed", elapsed.Round(time.Millisecond))
	p.hooks.OnCycleComplete(ctx, st.Cycle, st.Layer, elapsed)
	return st, p.cfg.CycleDelay.Std(), nil
}

func (p *Painter) newCycle(ctx context.Context, st FrameState) FrameState {
	shape := NewShape(p.cfg, p.src, p.deformer)
	p.started = time.Now()
	p.logger.Debug("Starting cycle",
		"cycle", st.Cycle+1, "id", shape.ID, "facets", shape.Facets,
		"radius", fmt.Sprintf("%.1f", shape.Radius), "color", shape.Color)
	p.hooks.OnCycleStart(ctx, shape.ID.String(), shape.Facets, shape.Radius)
	return FrameState{Cycle: st.Cycle + 1, Frames: st.Frames, Shape: &shape}
}

// Start schedules the animation on s. The context is checked at every
// continuation; once it is done no further frames are scheduled. done, if
// non-nil, is called exactly once with the final state and the reason the
// loop stopped (ErrDone, a context error, or a frame error).
func (p *Painter) Start(ctx context.Context, s Scheduler, done func(FrameState, error)) {
	s.Schedule(0, func() { p.resume(ctx, s, FrameState{}, done) })
}

func (p *Painter) resume(ctx context.Context, s Scheduler, st FrameState, done func(FrameState, error)) {
	if err := ctx.Err(); err != nil {
		p.logger.Debug("Painter stopped", "frames", st.Frames, "reason", err)
		p.finish(done, st, err)
		return
	}
	next, delay, err := p.Step(ctx, st)
	if err != nil {
		p.finish(done, next, err)
		return
	}
	s.Schedule(delay, func() { p.resume(ctx, s, next, done) })
}

func (p *Painter) finish(done func(FrameState, error), st FrameState, err error) {
	if done != nil {
		done(st, err)
	}
}

// PaintOnce draws one complete cycle synchronously, ignoring delays and the
// configured cycle count, and returns its shape.
func (p *Painter) PaintOnce(ctx context.Context) (ShapeInstance, error) {
	st := FrameState{}
	for {
		if err := ctx.Err(); err != nil {
			return ShapeInstance{}, err
		}
		var err error
		if st, _, err = p.Step(ctx, st); err != nil {
			return ShapeInstance{}, err
		}
		if st.Layer >= p.cfg.Layers {
			return *st.Shape, nil
		}
	}
}
