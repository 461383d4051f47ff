package geom

import (
	"math"
	"testing"

	"github.com/matzehuels/bleed/pkg/random"
)

func TestCreatePolygonOnCircle(t *testing.T) {
	tests := []struct {
		name   string
		center Point2D
		radius float64
		facets int
	}{
		{"pentagon", Point2D{X: 100, Y: 100}, 50, 5},
		{"triangle", Point2D{X: 300, Y: 200}, 120, 3},
		{"many facets", Point2D{X: 600, Y: 600}, 480, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CreatePolygon(tt.center, tt.radius, tt.facets, random.New(1))
			if p.Len() != tt.facets {
				t.Fatalf("len = %d, want %d", p.Len(), tt.facets)
			}
			for i, pt := range p {
				d := math.Hypot(pt.X-tt.center.X, pt.Y-tt.center.Y)
				if math.Abs(d-tt.radius) > 1 {
					t.Errorf("point %d at distance %v, want ~%v", i, d, tt.radius)
				}
				if pt.X < 0 || pt.Y < 0 {
					t.Errorf("point %d has negative coordinate: %+v", i, pt)
				}
				if pt.Variance < 0 || pt.Variance >= tt.radius/3 {
					t.Errorf("point %d variance %v outside [0, %v)", i, pt.Variance, tt.radius/3)
				}
				if pt.X != math.Round(pt.X) || pt.Y != math.Round(pt.Y) {
					t.Errorf("point %d not rounded: %+v", i, pt)
				}
			}
		})
	}
}

func TestCreatePolygonFirstVertex(t *testing.T) {
	p := CreatePolygon(Point2D{X: 100, Y: 100}, 50, 5, random.New(1))
	if p[0].X != 150 || p[0].Y != 100 {
		t.Errorf("first vertex = (%v, %v), want (150, 100)", p[0].X, p[0].Y)
	}
}

func TestCreatePolygonClampsNegative(t *testing.T) {
	p := CreatePolygon(Point2D{X: 10, Y: 10}, 100, 8, random.New(1))
	if p.Len() != 8 {
		t.Fatalf("len = %d, want 8", p.Len())
	}
	clamped := 0
	for _, pt := range p {
		if pt.X < 0 || pt.Y < 0 {
			t.Fatalf("negative coordinate survived: %+v", pt)
		}
		if pt.X == 0 || pt.Y == 0 {
			clamped++
		}
	}
	if clamped == 0 {
		t.Error("expected some coordinates to be clamped to 0")
	}
	// High end is never clamped.
	if p[0].X != 110 {
		t.Errorf("p[0].X = %v, want 110", p[0].X)
	}
}

func TestCreatePolygonDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		center Point2D
		radius float64
		facets int
	}{
		{"zero radius", Point2D{X: 1, Y: 1}, 0, 5},
		{"negative radius", Point2D{X: 1, Y: 1}, -3, 5},
		{"zero facets", Point2D{X: 1, Y: 1}, 10, 0},
		{"negative facets", Point2D{X: 1, Y: 1}, 10, -2},
		{"nan radius", Point2D{X: 1, Y: 1}, math.NaN(), 5},
		{"inf center", Point2D{X: math.Inf(1), Y: 1}, 10, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CreatePolygon(tt.center, tt.radius, tt.facets, random.New(1))
			if !p.Empty() {
				t.Errorf("CreatePolygon() = %v, want empty", p)
			}
		})
	}
}

func TestCreatePolygonDeterministic(t *testing.T) {
	a := CreatePolygon(Point2D{X: 200, Y: 200}, 80, 7, random.New(9))
	b := CreatePolygon(Point2D{X: 200, Y: 200}, 80, 7, random.New(9))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vertex %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPolygonBoundsAndClone(t *testing.T) {
	p := Polygon{{X: 1, Y: 5}, {X: 4, Y: 2}, {X: 3, Y: 9}}
	lo, hi := p.Bounds()
	if lo != (Point2D{X: 1, Y: 2}) || hi != (Point2D{X: 4, Y: 9}) {
		t.Errorf("Bounds() = %v, %v", lo, hi)
	}

	c := p.Clone()
	c[0].X = 100
	if p[0].X != 1 {
		t.Error("Clone() shares storage with the original")
	}

	var empty Polygon
	if lo, hi := empty.Bounds(); lo != (Point2D{}) || hi != (Point2D{}) {
		t.Errorf("empty Bounds() = %v, %v", lo, hi)
	}
	if empty.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}
