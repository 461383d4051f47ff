package painting

import (
	"github.com/google/uuid"

	"github.com/matzehuels/bleed/pkg/deform"
	"github.com/matzehuels/bleed/pkg/geom"
	"github.com/matzehuels/bleed/pkg/random"
)

// ShapeInstance is the set of parameters chosen once per painting cycle.
// Every layer of the cycle derives from Deformed.
type ShapeInstance struct {
	ID       uuid.UUID    `json:"id"`
	Center   geom.Point2D `json:"center"`
	Radius   float64      `json:"radius"`
	Facets   int          `json:"facets"`
	Color    string       `json:"color"`
	Base     geom.Polygon `json:"-"`
	Deformed geom.Polygon `json:"-"`
}

// NewShape draws fresh cycle parameters from src, builds the base polygon
// and applies one deformation pass with d.
func NewShape(cfg Config, src random.Source, d *deform.Deformer) ShapeInstance {
	s := ShapeInstance{
		ID:     newID(src),
		Radius: random.Uniform(src, cfg.RadiusMin, cfg.RadiusMax),
		Facets: max(MinFacets, random.IntRange(src, cfg.FacetsMin, cfg.FacetsMax)),
		Center: geom.Point2D{
			X: random.Uniform(src, 0, cfg.Width),
			Y: random.Uniform(src, 0, cfg.Height),
		},
		Color: RandomColor(src, cfg.Alpha),
	}
	s.Base = geom.CreatePolygon(s.Center, s.Radius, s.Facets, src)
	s.Deformed = d.Deform(s.Base, s.Radius)
	return s
}

// newID derives a version 4 UUID from src so seeded runs repeat their IDs.
func newID(src random.Source) uuid.UUID {
	id, err := uuid.NewRandomFromReader(sourceReader{src})
	if err != nil {
		return uuid.Nil
	}
	return id
}

// sourceReader adapts a Source to io.Reader, one byte per sample.
type sourceReader struct{ src random.Source }

func (r sourceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.src.Float64() * 256)
	}
	return len(p), nil
}
