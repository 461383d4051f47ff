// Package pkg provides the libraries behind bleed, a generative watercolor
// painter.
//
// # Overview
//
// A painting is a stack of translucent polygons. Each painting cycle picks a
// random center, radius, facet count and color, builds a regular-ish base
// polygon, deforms it once, and then draws many layers, each produced by
// repeatedly subdividing the deformed polygon with Gaussian noise. Because
// every layer is drawn at low opacity, the overlapping layers bleed into
// one another like wet paint.
//
// The data flow:
//
//	random.Source (seeded PCG)
//	         ↓
//	    [geom] base polygon
//	         ↓
//	    [deform] stochastic midpoint subdivision
//	         ↓
//	    [painting] cycles, layers, scheduling
//	         ↓
//	    [render/sink] SVG / PNG / braille / JSON
//
// # Quick Start
//
// Paint one cycle into an SVG document:
//
//	cfg := painting.DefaultConfig()
//	svg := sink.NewSVG(cfg.Width, cfg.Height, sink.WithBackground(cfg.Background))
//	p := painting.New(cfg, svg, random.New(42))
//	if _, err := p.PaintOnce(ctx); err != nil {
//	    return err
//	}
//	os.WriteFile("blot.svg", svg.Bytes(), 0o644)
//
// Or let the pipeline render, encode and cache several formats at once:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Seed:    42,
//	    Formats: []string{"svg", "png"},
//	})
//
// # Main Packages
//
// ## Geometry
//
// [geom] - Points, polygons and the base polygon generator.
//
// [random] - Seeded sources and the Gaussian, uniform and integer draws the
// painter uses.
//
// [deform] - Stochastic subdivision. Variance strategies decide how much
// noise each new midpoint gets.
//
// ## Painting
//
// [painting] - Config, shapes, the Surface interface and the Painter state
// machine that steps through layers and cycles.
//
// [schedule] - Schedulers for animated painting: a single-goroutine event
// loop and a manual scheduler for tests.
//
// [render/sink] - Surfaces: SVG documents, PNG rasters, terminal braille and
// a JSON recorder. [render] converts SVG to PDF via rsvg-convert.
//
// ## Infrastructure
//
// [pipeline] - Still rendering with caching, used by both the CLI and the
// HTTP service.
//
// [cache] - Artifact caches: file, Redis and null.
//
// [config] - The TOML config file.
//
// [server] - HTTP API.
//
// [observability] - Hook interfaces for metrics and tracing.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/deform/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/bleed/pkg/geom
// [random]: https://pkg.go.dev/github.com/matzehuels/bleed/pkg/random
// [deform]: https://pkg.go.dev/github.com/matzehuels/bleed/pkg/deform
// [painting]: https://pkg.go.dev/github.com/matzehuels/bleed/pkg/painting
// [schedule]: https://pkg.go.dev/github.com/matzehuels/bleed/pkg/schedule
// [render]: https://pkg.go.dev/github.com/matzehuels/bleed/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/bleed/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bleed/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/bleed/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/bleed/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/bleed/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/bleed/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/bleed/pkg/errors
package pkg
