package painting

import (
	"time"

	"github.com/matzehuels/bleed/pkg/deform"
	"github.com/matzehuels/bleed/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultWidth              = 800.0
	DefaultHeight             = 600.0
	DefaultRadiusMin          = 0.0
	DefaultRadiusMax          = 500.0
	DefaultFacetsMin          = 5
	DefaultFacetsMax          = 50
	DefaultLayers             = 50
	DefaultIterationsPerLayer = 3
	DefaultDeformScale        = 0.1
	DefaultAlpha              = 0.04
	DefaultFrameDelay         = 30 * time.Millisecond
	DefaultCycleDelay         = 500 * time.Millisecond
	DefaultBackground         = "#fbf8f1"

	// MinFacets is the floor applied to every random facet count.
	MinFacets = 5
)

// Duration is a time.Duration that reads and writes as "30ms" style text in
// TOML and JSON.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid duration %q", string(b))
	}
	*d = Duration(v)
	return nil
}

// Std returns the standard library duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config controls one painter. Zero values for fields that cannot
// meaningfully be zero are replaced by [Config.SetDefaults].
type Config struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`

	RadiusMin float64 `toml:"radius_min" json:"radius_min"`
	RadiusMax float64 `toml:"radius_max" json:"radius_max"`
	FacetsMin int     `toml:"facets_min" json:"facets_min"`
	FacetsMax int     `toml:"facets_max" json:"facets_max"`

	Layers             int     `toml:"layers" json:"layers"`
	IterationsPerLayer int     `toml:"iterations_per_layer" json:"iterations_per_layer"`
	DeformScale        float64 `toml:"deform_scale" json:"deform_scale"`
	Strategy           string  `toml:"strategy" json:"strategy"`
	MaxPoints          int     `toml:"max_points" json:"max_points"`

	Alpha      float64 `toml:"alpha" json:"alpha"`
	Background string  `toml:"background" json:"background"`

	FrameDelay Duration `toml:"frame_delay" json:"frame_delay"`
	CycleDelay Duration `toml:"cycle_delay" json:"cycle_delay"`
	Cycles     int      `toml:"cycles" json:"cycles"` // 0 runs forever

	Seed uint64 `toml:"seed" json:"seed,omitempty"` // 0 picks a seed from the clock
}

// DefaultConfig returns a fully populated configuration.
func DefaultConfig() Config {
	return Config{
		Width:              DefaultWidth,
		Height:             DefaultHeight,
		RadiusMin:          DefaultRadiusMin,
		RadiusMax:          DefaultRadiusMax,
		FacetsMin:          DefaultFacetsMin,
		FacetsMax:          DefaultFacetsMax,
		Layers:             DefaultLayers,
		IterationsPerLayer: DefaultIterationsPerLayer,
		DeformScale:        DefaultDeformScale,
		Strategy:           deform.StrategyVariance,
		MaxPoints:          deform.DefaultMaxPoints,
		Alpha:              DefaultAlpha,
		Background:         DefaultBackground,
		FrameDelay:         Duration(DefaultFrameDelay),
		CycleDelay:         Duration(DefaultCycleDelay),
	}
}

// SetDefaults fills fields whose zero value is not usable.
func (c *Config) SetDefaults() {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.RadiusMax == 0 {
		c.RadiusMax = DefaultRadiusMax
	}
	if c.FacetsMin == 0 {
		c.FacetsMin = DefaultFacetsMin
	}
	if c.FacetsMax == 0 {
		c.FacetsMax = DefaultFacetsMax
	}
	if c.Layers == 0 {
		c.Layers = DefaultLayers
	}
	if c.DeformScale == 0 {
		c.DeformScale = DefaultDeformScale
	}
	if c.Strategy == "" {
		c.Strategy = deform.StrategyVariance
	}
	if c.MaxPoints == 0 {
		c.MaxPoints = deform.DefaultMaxPoints
	}
	if c.Alpha == 0 {
		c.Alpha = DefaultAlpha
	}
	if c.Background == "" {
		c.Background = DefaultBackground
	}
}

// Validate checks ranges and names. It does not apply defaults.
func (c *Config) Validate() error {
	if !(c.Width > 0) || !(c.Height > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "surface size must be positive, got %gx%g", c.Width, c.Height)
	}
	if err := errors.ValidateRange("radius", c.RadiusMin, c.RadiusMax, 0); err != nil {
		return err
	}
	if err := errors.ValidateRange("facets", float64(c.FacetsMin), float64(c.FacetsMax), 1); err != nil {
		return err
	}
	if err := errors.ValidatePositive("layers", c.Layers); err != nil {
		return err
	}
	if c.IterationsPerLayer < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "iterations_per_layer cannot be negative, got %d", c.IterationsPerLayer)
	}
	if !(c.DeformScale > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "deform_scale must be positive, got %g", c.DeformScale)
	}
	if !(c.Alpha > 0 && c.Alpha <= 1) {
		return errors.New(errors.ErrCodeInvalidConfig, "alpha must be in (0, 1], got %g", c.Alpha)
	}
	if c.FrameDelay < 0 || c.CycleDelay < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "delays cannot be negative")
	}
	if c.Cycles < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cycles cannot be negative, got %d", c.Cycles)
	}
	if _, err := deform.StrategyByName(c.Strategy); err != nil {
		return err
	}
	return nil
}

// PeakPoints is the vertex count of one layer at the largest facet count.
func (c *Config) PeakPoints() int {
	return 2 * max(c.FacetsMax, MinFacets) << max(c.IterationsPerLayer, 0)
}
