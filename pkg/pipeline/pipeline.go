// Package pipeline renders still bleed paintings.
//
// This package implements the paint → encode → cache pipeline shared by the
// `bleed paint` command and the HTTP service, so both produce byte-identical
// output for the same seed and configuration.
//
// # Architecture
//
// One run paints Shapes complete cycles with a single seeded painter onto a
// fan-out of surfaces, then encodes the requested formats:
//
//   - svg: [sink.SVG]
//   - png: [sink.Raster], rasterized natively
//   - pdf: the SVG converted by rsvg-convert
//   - json: the raw polygons from [sink.Recorder]
//
// Every artifact is cached under a key built from the seed, format, scale
// and configuration. A painting is a pure function of those, so a hit is
// always valid.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  painting.DefaultConfig(),
//	    Seed:    42,
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bleed/pkg/cache"
	"github.com/matzehuels/bleed/pkg/errors"
	"github.com/matzehuels/bleed/pkg/painting"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultShapes is the number of cycles painted into one still.
	DefaultShapes = 1

	// MaxShapes bounds a single request.
	MaxShapes = 64

	// DefaultScale is the PNG pixel density.
	DefaultScale = 1.0

	// MaxRasterSide bounds each PNG dimension after scaling.
	MaxRasterSide = 4096

	// MaxFills bounds shapes × layers, the number of polygons one still draws.
	MaxFills = 16384
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one still painting.
// This struct supports JSON serialization for API requests.
type Options struct {
	Config  painting.Config `json:"config"`
	Seed    uint64          `json:"seed,omitempty"` // 0 picks one from the clock
	Shapes  int             `json:"shapes,omitempty"`
	Formats []string        `json:"formats,omitempty"`
	Scale   float64         `json:"scale,omitempty"`
	Refresh bool            `json:"refresh,omitempty"` // ignore cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Seed is the seed the painting was made with.
	Seed uint64

	// Shapes holds the per-cycle parameters. Empty on a full cache hit.
	Shapes []painting.ShapeInstance

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Shapes     int           `json:"shapes"`
	Polygons   int           `json:"polygons"`
	Points     int           `json:"points"`
	RenderTime time.Duration `json:"render_time_ns"`
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	Hits int  // formats served from cache
	Hit  bool // every format came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Config.SetDefaults()
	if err := o.Config.Validate(); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)

	if o.Shapes == 0 {
		o.Shapes = DefaultShapes
	}
	if o.Shapes < 0 || o.Shapes > MaxShapes {
		return errors.New(errors.ErrCodeLimitExceeded, "shapes must be in [1, %d], got %d", MaxShapes, o.Shapes)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if !(o.Scale > 0 && o.Scale <= 8) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, 8], got %g", o.Scale)
	}
	if fills := o.Shapes * o.Config.Layers; fills > MaxFills {
		return errors.New(errors.ErrCodeLimitExceeded, "shapes × layers is limited to %d, got %d", MaxFills, fills)
	}
	if slices.Contains(o.Formats, FormatPNG) {
		w, h := o.Config.Width*o.Scale, o.Config.Height*o.Scale
		if w > MaxRasterSide || h > MaxRasterSide {
			return errors.New(errors.ErrCodeLimitExceeded, "png is limited to %dx%d px, got %.0fx%.0f", MaxRasterSide, MaxRasterSide, w, h)
		}
	}

	if o.Seed == 0 {
		o.Seed = o.Config.Seed
	}
	if o.Seed == 0 {
		o.Seed = uint64(time.Now().UnixNano())
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	scale := 0.0
	if format == FormatPNG {
		scale = o.Scale
	}
	cfg := o.Config
	cfg.Seed = 0
	return cache.ArtifactKeyOpts{
		Format: format,
		Seed:   o.Seed,
		Scale:  scale,
		Config: struct {
			Painting painting.Config `json:"painting"`
			Shapes   int             `json:"shapes"`
		}{cfg, o.Shapes},
	}
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
