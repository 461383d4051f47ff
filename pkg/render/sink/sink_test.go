package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/bleed/pkg/errors"
	"github.com/matzehuels/bleed/pkg/geom"
	"github.com/matzehuels/bleed/pkg/painting"
	"github.com/matzehuels/bleed/pkg/random"
)

var square = geom.Polygon{{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 90, Y: 90}, {X: 10, Y: 90}}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff8000", color.NRGBA{255, 128, 0, 255}},
		{"#F80", color.NRGBA{255, 136, 0, 255}},
		{"rgba(10, 20, 30, 0.5)", color.NRGBA{10, 20, 30, 128}},
		{"rgba(10,20,30,1)", color.NRGBA{10, 20, 30, 255}},
		{"rgb(1, 2, 3)", color.NRGBA{1, 2, 3, 255}},
		{"rgba(300, -5, 30, 2)", color.NRGBA{255, 0, 30, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "red", "#12", "rgba(1,2)", "hsl(1,2,3)"} {
		if _, err := ParseColor(bad); !errors.Is(err, errors.ErrCodeInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want INVALID_COLOR", bad, err)
		}
	}
}

func TestHexColor(t *testing.T) {
	if got := HexColor("rgba(255, 0, 128, 0.04)"); got != "#ff0080" {
		t.Errorf("HexColor() = %q", got)
	}
	if got := HexColor("nope"); got != "" {
		t.Errorf("HexColor(nope) = %q, want empty", got)
	}
}

func TestSVG(t *testing.T) {
	s := NewSVG(200, 100, WithBackground("#fbf8f1"))
	painting.DrawPolygon(s, square, "rgba(1, 2, 3, 0.040)")
	painting.DrawPolygon(s, nil, "red")

	out := string(s.Bytes())
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200.0 100.0" width="200" height="100">`) {
		t.Errorf("unexpected header: %s", out)
	}
	if !strings.Contains(out, `<rect width="100%" height="100%" fill="#fbf8f1"/>`) {
		t.Error("missing background rect")
	}
	want := `<path d="M10.0 10.0L90.0 10.0L90.0 90.0L10.0 90.0Z" fill="rgba(1, 2, 3, 0.040)"/>`
	if !strings.Contains(out, want) {
		t.Errorf("missing path %s in\n%s", want, out)
	}
	if s.Paths() != 1 {
		t.Errorf("Paths() = %d, want 1", s.Paths())
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("document not closed")
	}

	s.Reset()
	if strings.Contains(string(s.Bytes()), "<path") {
		t.Error("Reset() should drop paths")
	}
}

func TestSVGPrecisionAndEscaping(t *testing.T) {
	s := NewSVG(10, 10, WithPrecision(0))
	painting.DrawPolygon(s, geom.Polygon{{X: 1.4, Y: 2.6}, {X: 3, Y: 4}}, `"><script>`)
	out := string(s.Bytes())
	if !strings.Contains(out, `d="M1 3L3 4Z"`) {
		t.Errorf("precision not applied:\n%s", out)
	}
	if strings.Contains(out, "<script>") {
		t.Error("fill color was not escaped")
	}
}

func TestRaster(t *testing.T) {
	r, err := NewRaster(100, 100, WithRasterBackground("#ffffff"))
	if err != nil {
		t.Fatal(err)
	}
	painting.DrawPolygon(r, square, "rgba(255, 0, 0, 1)")

	if got := r.Image().RGBAAt(50, 50); got.R < 250 || got.G > 5 || got.B > 5 {
		t.Errorf("inside pixel = %v, want red", got)
	}
	if got := r.Image().RGBAAt(2, 2); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("outside pixel = %v, want background", got)
	}
	if r.Fills() != 1 {
		t.Errorf("Fills() = %d", r.Fills())
	}

	data, err := r.PNG()
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if img.Bounds().Dx() != 100 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}
}

func TestRasterTranslucentLayersAccumulate(t *testing.T) {
	r, err := NewRaster(100, 100, WithRasterBackground("#ffffff"))
	if err != nil {
		t.Fatal(err)
	}
	painting.DrawPolygon(r, square, "rgba(0, 0, 0, 0.1)")
	once := r.Image().RGBAAt(50, 50).R
	for range 9 {
		painting.DrawPolygon(r, square, "rgba(0, 0, 0, 0.1)")
	}
	many := r.Image().RGBAAt(50, 50).R
	if !(once < 255 && many < once) {
		t.Errorf("expected darkening, got %d then %d", once, many)
	}
}

func TestRasterScale(t *testing.T) {
	r, err := NewRaster(100, 50, WithScale(2))
	if err != nil {
		t.Fatal(err)
	}
	if b := r.Image().Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("bounds = %v", b)
	}
	painting.DrawPolygon(r, square, "#000000")
	if got := r.Image().RGBAAt(190, 50); got.A != 0 {
		t.Errorf("pixel outside scaled square painted: %v", got)
	}
	if got := r.Image().RGBAAt(150, 90); got.A == 0 {
		t.Error("pixel inside scaled square not painted")
	}
}

func TestRasterErrors(t *testing.T) {
	if _, err := NewRaster(0, 10); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewRaster(0, 10) error = %v", err)
	}
	if _, err := NewRaster(10, 10, WithRasterBackground("mauve")); !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("bad background error = %v", err)
	}

	r, _ := NewRaster(10, 10)
	painting.DrawPolygon(r, square, "mauve")
	if r.Fills() != 0 {
		t.Error("fill with a bad color should be skipped")
	}
	if _, err := r.PNG(); !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("PNG() error = %v, want the color error", err)
	}
}

func TestBraille(t *testing.T) {
	b := NewBraille(10, 5, 100, 100)
	painting.DrawPolygon(b, square, "rgba(255, 0, 0, 0.5)")

	lines := b.Lines()
	if len(lines) != 5 {
		t.Fatalf("Lines() = %d rows", len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != 10 {
			t.Fatalf("row has %d cells, want 10", n)
		}
	}
	// Cell (5, 2) is the middle of the square and fully covered.
	if got := []rune(lines[2])[5]; got != 0x28FF {
		t.Errorf("center cell = %U, want full cell", got)
	}
	if got := []rune(lines[0])[0]; got != ' ' {
		t.Errorf("corner cell = %U, want blank", got)
	}
	if b.Color() != "#ff0000" || b.Fills() != 1 {
		t.Errorf("Color() = %q, Fills() = %d", b.Color(), b.Fills())
	}

	b.Clear()
	if strings.TrimSpace(strings.Join(b.Lines(), "")) != "" || b.Fills() != 0 {
		t.Error("Clear() should blank the grid")
	}
}

func TestBrailleIgnoresDegenerate(t *testing.T) {
	b := NewBraille(4, 4, 10, 10)
	painting.DrawPolygon(b, geom.Polygon{{X: 1, Y: 1}, {X: 9, Y: 9}}, "#000000")
	if b.Fills() != 0 {
		t.Error("two-point path should not fill")
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	painting.DrawPolygon(r, square, "c1")
	painting.DrawPolygon(r, square[:3], "c2")
	r.Fill() // no path

	if len(r.Polygons) != 2 || r.Points() != 7 {
		t.Fatalf("recorded %d polygons / %d points", len(r.Polygons), r.Points())
	}
	if r.Polygons[1].Color != "c2" || r.Polygons[0].Points[2] != (geom.Point2D{X: 90, Y: 90}) {
		t.Errorf("unexpected recording: %+v", r.Polygons)
	}

	data, err := r.JSON(WithJSONSize(100, 80), WithJSONSeed(9), WithJSONBackground("#fff"))
	if err != nil {
		t.Fatal(err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != 100 || out.Height != 80 || out.Seed != 9 || out.Background != "#fff" || len(out.Polygons) != 2 {
		t.Errorf("JSON() = %+v", out)
	}
}

func TestRecorderEmptyJSON(t *testing.T) {
	data, err := NewRecorder().JSON()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"polygons": []`) {
		t.Errorf("empty recorder JSON = %s", data)
	}
}

func TestMulti(t *testing.T) {
	a, b := NewRecorder(), NewSVG(100, 100)
	m := Multi(a, nil, b)
	painting.DrawPolygon(m, square, "red")
	if len(a.Polygons) != 1 || b.Paths() != 1 {
		t.Errorf("fan-out missed a surface: %d / %d", len(a.Polygons), b.Paths())
	}
}

func TestPainterOnSurfaces(t *testing.T) {
	cfg := painting.DefaultConfig()
	cfg.Width, cfg.Height = 200, 150
	cfg.RadiusMin, cfg.RadiusMax = 20, 60
	cfg.FacetsMax = 8
	cfg.Layers = 5

	rec := NewRecorder()
	svg := NewSVG(cfg.Width, cfg.Height)
	img, err := NewRaster(cfg.Width, cfg.Height, WithRasterBackground(cfg.Background))
	if err != nil {
		t.Fatal(err)
	}
	brl := NewBraille(40, 10, cfg.Width, cfg.Height)

	p := painting.New(cfg, Multi(rec, svg, img, brl), random.New(11))
	shape, err := p.PaintOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Polygons) != cfg.Layers || svg.Paths() != cfg.Layers || img.Fills() != cfg.Layers || brl.Fills() != cfg.Layers {
		t.Errorf("fills: rec=%d svg=%d raster=%d braille=%d", len(rec.Polygons), svg.Paths(), img.Fills(), brl.Fills())
	}
	want := shape.Deformed.Len() << cfg.IterationsPerLayer
	for _, poly := range rec.Polygons {
		if len(poly.Points) != want {
			t.Fatalf("layer has %d points, want %d", len(poly.Points), want)
		}
	}
	if img.Err() != nil {
		t.Errorf("raster error: %v", img.Err())
	}
}
