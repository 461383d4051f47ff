package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bleed/pkg/cache"
	"github.com/matzehuels/bleed/pkg/errors"
	"github.com/matzehuels/bleed/pkg/observability"
	"github.com/matzehuels/bleed/pkg/painting"
	"github.com/matzehuels/bleed/pkg/random"
	"github.com/matzehuels/bleed/pkg/render"
	"github.com/matzehuels/bleed/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute renders one still painting to every requested format, serving
// formats from cache when all of them are present.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Seed: opts.Seed, Artifacts: make(map[string][]byte)}

	if !opts.Refresh {
		r.fromCache(ctx, opts, result)
		if result.CacheInfo.Hit {
			opts.Logger.Debug("Served from cache", "seed", opts.Seed, "formats", opts.Formats)
			return result, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, shapes, stats, err := r.Render(ctx, opts)
	stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	result.Artifacts = artifacts
	result.Shapes = shapes
	result.Stats = stats
	result.CacheInfo = CacheInfo{}

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("Cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, key, len(data))
	}

	opts.Logger.Info("Rendered painting",
		"seed", opts.Seed,
		"shapes", stats.Shapes,
		"points", stats.Points,
		"formats", opts.Formats,
		"duration", stats.RenderTime.Round(time.Millisecond))
	return result, nil
}

// fromCache fills result with every cached format. CacheInfo.Hit is set only
// when all formats were found.
func (r *Runner) fromCache(ctx context.Context, opts Options, result *Result) {
	hooks := observability.Cache()
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("Cache read failed", "format", format, "error", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, key)
			continue
		}
		hooks.OnCacheHit(ctx, key)
		result.Artifacts[format] = data
		result.CacheInfo.Hits++
	}
	result.CacheInfo.Hit = result.CacheInfo.Hits == len(opts.Formats)
}

// Render paints and encodes without touching the cache. opts must have
// passed ValidateAndSetDefaults.
func (r *Runner) Render(ctx context.Context, opts Options) (map[string][]byte, []painting.ShapeInstance, Stats, error) {
	cfg := opts.Config
	want := make(map[string]bool, len(opts.Formats))
	for _, f := range opts.Formats {
		want[f] = true
	}

	rec := sink.NewRecorder()
	surfaces := []painting.Surface{rec}

	var svg *sink.SVG
	if want[FormatSVG] || want[FormatPDF] {
		svg = sink.NewSVG(cfg.Width, cfg.Height, sink.WithBackground(cfg.Background))
		surfaces = append(surfaces, svg)
	}
	var img *sink.Raster
	if want[FormatPNG] {
		var err error
		img, err = sink.NewRaster(cfg.Width, cfg.Height,
			sink.WithRasterBackground(cfg.Background), sink.WithScale(opts.Scale))
		if err != nil {
			return nil, nil, Stats{}, err
		}
		surfaces = append(surfaces, img)
	}

	p := painting.New(cfg, sink.Multi(surfaces...), random.New(opts.Seed), painting.WithLogger(opts.Logger))
	shapes := make([]painting.ShapeInstance, 0, opts.Shapes)
	for range opts.Shapes {
		shape, err := p.PaintOnce(ctx)
		if err != nil {
			return nil, nil, Stats{}, err
		}
		shapes = append(shapes, shape)
	}
	stats := Stats{Shapes: len(shapes), Polygons: len(rec.Polygons), Points: rec.Points()}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error
		switch format {
		case FormatSVG:
			data = svg.Bytes()
		case FormatPDF:
			data, err = render.ToPDF(ctx, svg.Bytes())
		case FormatPNG:
			data, err = img.PNG()
		case FormatJSON:
			data, err = rec.JSON(
				sink.WithJSONSize(cfg.Width, cfg.Height),
				sink.WithJSONSeed(opts.Seed),
				sink.WithJSONBackground(cfg.Background),
				sink.WithJSONShapes(shapes...))
		}
		if err != nil {
			if errors.GetCode(err) == "" {
				err = errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
			}
			return nil, nil, Stats{}, err
		}
		artifacts[format] = data
	}
	return artifacts, shapes, stats, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
