package sink

import "github.com/matzehuels/bleed/pkg/painting"

type multi []painting.Surface

// Multi returns a surface that forwards every call to each of surfaces in
// order. Nil entries are dropped.
func Multi(surfaces ...painting.Surface) painting.Surface {
	m := make(multi, 0, len(surfaces))
	for _, s := range surfaces {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

func (m multi) BeginPath() {
	for _, s := range m {
		s.BeginPath()
	}
}

func (m multi) MoveTo(x, y float64) {
	for _, s := range m {
		s.MoveTo(x, y)
	}
}

func (m multi) LineTo(x, y float64) {
	for _, s := range m {
		s.LineTo(x, y)
	}
}

func (m multi) ClosePath() {
	for _, s := range m {
		s.ClosePath()
	}
}

func (m multi) SetFillColor(c string) {
	for _, s := range m {
		s.SetFillColor(c)
	}
}

func (m multi) Fill() {
	for _, s := range m {
		s.Fill()
	}
}
