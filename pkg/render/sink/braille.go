package sink

import (
	"math"
	"slices"

	"github.com/matzehuels/bleed/pkg/geom"
	"github.com/matzehuels/bleed/pkg/painting"
)

var _ painting.Surface = (*Braille)(nil)

// Braille renders fills onto a grid of braille cells, 2x4 dots per cell.
// Every fill sets the dots it covers; there is no alpha.
type Braille struct {
	cols, rows int
	sx, sy     float64 // canvas units to dots
	mask       [][]uint8

	path  []geom.Point2D
	color string
	fills int
}

// NewBraille creates a cols x rows cell grid showing a width x height canvas.
func NewBraille(cols, rows int, width, height float64) *Braille {
	cols, rows = max(cols, 1), max(rows, 1)
	b := &Braille{cols: cols, rows: rows}
	if width > 0 {
		b.sx = float64(2*cols) / width
	}
	if height > 0 {
		b.sy = float64(4*rows) / height
	}
	b.mask = make([][]uint8, rows)
	for i := range b.mask {
		b.mask[i] = make([]uint8, cols)
	}
	return b
}

func (b *Braille) BeginPath()            { b.path = b.path[:0] }
func (b *Braille) MoveTo(x, y float64)   { b.path = append(b.path[:0], b.dot(x, y)) }
func (b *Braille) LineTo(x, y float64)   { b.path = append(b.path, b.dot(x, y)) }
func (b *Braille) ClosePath()            {}
func (b *Braille) SetFillColor(c string) { b.color = c }

func (b *Braille) dot(x, y float64) geom.Point2D { return geom.Point2D{X: x * b.sx, Y: y * b.sy} }

// Fill scan-converts the current path with the even-odd rule, sampling
// every dot at its center.
func (b *Braille) Fill() {
	if len(b.path) < 3 {
		b.path = b.path[:0]
		return
	}
	var xs []float64
	for my := range 4 * b.rows {
		y := float64(my) + 0.5
		xs = xs[:0]
		for i, p := range b.path {
			q := b.path[(i+1)%len(b.path)]
			if (p.Y <= y) == (q.Y <= y) {
				continue
			}
			xs = append(xs, p.X+(y-p.Y)*(q.X-p.X)/(q.Y-p.Y))
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			from := int(math.Ceil(xs[i] - 0.5))
			to := int(math.Floor(xs[i+1] - 0.5))
			for mx := from; mx <= to; mx++ {
				b.setDot(mx, my)
			}
		}
	}
	b.path = b.path[:0]
	b.fills++
}

// setDot sets a micro-pixel at dot coordinates.
func (b *Braille) setDot(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cx >= b.cols || cy >= b.rows {
		return
	}
	b.mask[cy][cx] |= dotBits[mx%2][my%4]
}

// dotBits maps a dot's column and row within a cell to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Clear removes every dot.
func (b *Braille) Clear() {
	for _, row := range b.mask {
		clear(row)
	}
	b.fills = 0
}

// Fills returns the number of fills since the last Clear.
func (b *Braille) Fills() int { return b.fills }

// Color returns the last fill color as #rrggbb, or "" if none parsed.
func (b *Braille) Color() string { return HexColor(b.color) }

// Size returns the grid size in cells.
func (b *Braille) Size() (cols, rows int) { return b.cols, b.rows }

// Lines returns one string per cell row.
func (b *Braille) Lines() []string {
	out := make([]string, b.rows)
	row := make([]rune, b.cols)
	for y := range b.rows {
		for x := range b.cols {
			if m := b.mask[y][x]; m == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(m))
			}
		}
		out[y] = string(row)
	}
	return out
}
