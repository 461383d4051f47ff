// Package painting drives the layered watercolor animation.
//
// # Overview
//
// A painting cycle picks a random [ShapeInstance] (center, radius, facet
// count, translucent color), builds its base polygon, deforms it once, and
// then draws Layers re-deformed copies of that polygon, one per frame. When
// the layer budget is spent a new cycle starts with fresh parameters.
//
// The package owns none of the outside world. Drawing goes through a
// [Surface] and pacing through a [Scheduler]; both are supplied by the
// caller. State between frames lives in an explicit [FrameState] value that
// is handed from one continuation to the next.
//
// # Usage
//
//	loop := schedule.NewLoop()
//	p := painting.New(cfg, surface, random.New(seed), painting.WithLogger(logger))
//	p.Start(ctx, loop, nil)
//	err := loop.Run(ctx)
//
// For a still image, [Painter.PaintOnce] draws one full cycle synchronously.
package painting
