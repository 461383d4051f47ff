package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/vector"

	"github.com/matzehuels/bleed/pkg/errors"
	"github.com/matzehuels/bleed/pkg/painting"
)

var _ painting.Surface = (*Raster)(nil)

// RasterOption configures a Raster surface.
type RasterOption func(*Raster)

// WithRasterBackground fills the image with color before drawing.
func WithRasterBackground(color string) RasterOption {
	return func(r *Raster) { r.background = color }
}

// WithScale multiplies the pixel size and every coordinate by s.
func WithScale(s float64) RasterOption {
	return func(r *Raster) {
		if s > 0 {
			r.scale = s
		}
	}
}

// Raster composites each fill over an RGBA image using an anti-aliasing
// vector rasterizer.
type Raster struct {
	img        *image.RGBA
	rast       *vector.Rasterizer
	background string
	scale      float64

	fill    *image.Uniform
	pending bool
	err     error
	fills   int
}

// NewRaster creates a raster surface for a width x height canvas. The
// background color, if set, must parse.
func NewRaster(width, height float64, opts ...RasterOption) (*Raster, error) {
	r := &Raster{scale: 1, fill: image.NewUniform(color.Black)}
	for _, opt := range opts {
		opt(r)
	}

	w, h := int(width*r.scale+0.5), int(height*r.scale+0.5)
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "raster size must be positive, got %dx%d", w, h)
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.rast = vector.NewRasterizer(w, h)

	if r.background != "" {
		bg, err := ParseColor(r.background)
		if err != nil {
			return nil, err
		}
		draw.Draw(r.img, r.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	return r, nil
}

func (r *Raster) BeginPath() {
	b := r.img.Bounds()
	r.rast.Reset(b.Dx(), b.Dy())
	r.pending = false
}

func (r *Raster) MoveTo(x, y float64) {
	r.rast.MoveTo(float32(x*r.scale), float32(y*r.scale))
	r.pending = true
}

func (r *Raster) LineTo(x, y float64) {
	r.rast.LineTo(float32(x*r.scale), float32(y*r.scale))
}

func (r *Raster) ClosePath() { r.rast.ClosePath() }

// SetFillColor parses c. An unparseable color is remembered as the
// surface error and subsequent fills are skipped until a valid color is set.
func (r *Raster) SetFillColor(c string) {
	col, err := ParseColor(c)
	if err != nil {
		r.err = err
		r.fill = nil
		return
	}
	r.fill = image.NewUniform(col)
}

// Fill composites the current path over the image.
func (r *Raster) Fill() {
	if !r.pending || r.fill == nil {
		return
	}
	r.rast.DrawOp = draw.Over
	r.rast.Draw(r.img, r.img.Bounds(), r.fill, image.Point{})
	r.pending = false
	r.fills++
}

// Err returns the first color error seen.
func (r *Raster) Err() error { return r.err }

// Fills returns the number of composited fills.
func (r *Raster) Fills() int { return r.fills }

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA { return r.img }

// PNG encodes the image.
func (r *Raster) PNG() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
