package painting

import "github.com/matzehuels/bleed/pkg/geom"

// Surface is the drawing collaborator. Calls arrive in canvas order:
// SetFillColor, BeginPath, MoveTo, LineTo…, ClosePath, Fill.
type Surface interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	SetFillColor(color string)
	Fill()
}

// DrawPolygon fills p on s with color. An empty polygon is skipped
// entirely: no calls reach the surface.
func DrawPolygon(s Surface, p geom.Polygon, color string) {
	if len(p) == 0 {
		return
	}
	s.SetFillColor(color)
	s.BeginPath()
	s.MoveTo(p[0].X, p[0].Y)
	for _, pt := range p[1:] {
		s.LineTo(pt.X, pt.Y)
	}
	s.ClosePath()
	s.Fill()
}
