package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/bleed/pkg/painting"
)

var _ painting.Surface = (*SVG)(nil)

// SVGOption configures an SVG surface.
type SVGOption func(*SVG)

// WithBackground paints a full-size rectangle of color under the painting.
func WithBackground(color string) SVGOption { return func(s *SVG) { s.background = color } }

// WithPrecision sets the number of decimals written per coordinate.
func WithPrecision(decimals int) SVGOption {
	return func(s *SVG) { s.precision = min(max(decimals, 0), 6) }
}

// SVG records filled paths into an SVG document.
type SVG struct {
	width, height float64
	background    string
	precision     int

	body  bytes.Buffer
	path  bytes.Buffer
	fill  string
	paths int
}

// NewSVG creates an empty SVG surface of the given size.
func NewSVG(width, height float64, opts ...SVGOption) *SVG {
	s := &SVG{width: width, height: height, precision: 1, fill: "black"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVG) BeginPath()            { s.path.Reset() }
func (s *SVG) MoveTo(x, y float64)   { s.point('M', x, y) }
func (s *SVG) LineTo(x, y float64)   { s.point('L', x, y) }
func (s *SVG) SetFillColor(c string) { s.fill = c }

func (s *SVG) ClosePath() {
	if s.path.Len() > 0 {
		s.path.WriteString("Z")
	}
}

// Fill writes the current path. A Fill without a path is ignored.
func (s *SVG) Fill() {
	if s.path.Len() == 0 {
		return
	}
	fmt.Fprintf(&s.body, "  <path d=\"%s\" fill=\"%s\"/>\n", s.path.Bytes(), html.EscapeString(s.fill))
	s.path.Reset()
	s.paths++
}

func (s *SVG) point(cmd byte, x, y float64) {
	s.path.WriteByte(cmd)
	fmt.Fprintf(&s.path, "%.*f %.*f", s.precision, x, s.precision, y)
}

// Paths returns the number of filled paths so far.
func (s *SVG) Paths() int { return s.paths }

// Reset drops all recorded paths.
func (s *SVG) Reset() {
	s.body.Reset()
	s.path.Reset()
	s.paths = 0
}

// Bytes returns the complete document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)
	if s.background != "" {
		fmt.Fprintf(&buf, "  <rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", html.EscapeString(s.background))
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
