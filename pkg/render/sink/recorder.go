package sink

import (
	"encoding/json"

	"github.com/matzehuels/bleed/pkg/geom"
	"github.com/matzehuels/bleed/pkg/painting"
)

var _ painting.Surface = (*Recorder)(nil)

// Recorded is one filled polygon.
type Recorded struct {
	Color  string         `json:"color"`
	Points []geom.Point2D `json:"points"`
}

// Recorder keeps every filled polygon in call order.
type Recorder struct {
	Polygons []Recorded

	cur   []geom.Point2D
	color string
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) BeginPath()            { r.cur = nil }
func (r *Recorder) MoveTo(x, y float64)   { r.cur = []geom.Point2D{{X: x, Y: y}} }
func (r *Recorder) LineTo(x, y float64)   { r.cur = append(r.cur, geom.Point2D{X: x, Y: y}) }
func (r *Recorder) ClosePath()            {}
func (r *Recorder) SetFillColor(c string) { r.color = c }

func (r *Recorder) Fill() {
	if len(r.cur) == 0 {
		return
	}
	r.Polygons = append(r.Polygons, Recorded{Color: r.color, Points: r.cur})
	r.cur = nil
}

// Points returns the total vertex count across all polygons.
func (r *Recorder) Points() int {
	n := 0
	for _, p := range r.Polygons {
		n += len(p.Points)
	}
	return n
}

// JSONOption configures [Recorder.JSON].
type JSONOption func(*jsonOutput)

// WithJSONSize records the canvas size.
func WithJSONSize(width, height float64) JSONOption {
	return func(o *jsonOutput) { o.Width, o.Height = width, height }
}

// WithJSONSeed records the seed the painting was made with.
func WithJSONSeed(seed uint64) JSONOption { return func(o *jsonOutput) { o.Seed = seed } }

// WithJSONBackground records the background color.
func WithJSONBackground(c string) JSONOption { return func(o *jsonOutput) { o.Background = c } }

// WithJSONShapes records the per-cycle shape parameters.
func WithJSONShapes(shapes ...painting.ShapeInstance) JSONOption {
	return func(o *jsonOutput) { o.Shapes = append(o.Shapes, shapes...) }
}

type jsonOutput struct {
	Width      float64                  `json:"width,omitempty"`
	Height     float64                  `json:"height,omitempty"`
	Seed       uint64                   `json:"seed,omitempty"`
	Background string                   `json:"background,omitempty"`
	Shapes     []painting.ShapeInstance `json:"shapes,omitempty"`
	Polygons   []Recorded               `json:"polygons"`
}

// JSON exports the recorded painting as a pretty-printed document.
func (r *Recorder) JSON(opts ...JSONOption) ([]byte, error) {
	out := jsonOutput{Polygons: r.Polygons}
	if out.Polygons == nil {
		out.Polygons = []Recorded{}
	}
	for _, opt := range opts {
		opt(&out)
	}
	return json.MarshalIndent(out, "", "  ")
}
