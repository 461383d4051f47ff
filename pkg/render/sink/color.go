package sink

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/bleed/pkg/errors"
)

// ParseColor converts a CSS color string into a non-premultiplied color.
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))

	switch {
	case strings.HasPrefix(v, "#"):
		c, err := colorful.Hex(expandHex(v))
		if err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse %q", s)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil

	case strings.HasPrefix(v, "rgba("):
		var r, g, b int
		var a float64
		if _, err := fmt.Sscanf(v, "rgba(%d,%d,%d,%g)", &r, &g, &b, &a); err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse %q", s)
		}
		return nrgba(r, g, b, a), nil

	case strings.HasPrefix(v, "rgb("):
		var r, g, b int
		if _, err := fmt.Sscanf(v, "rgb(%d,%d,%d)", &r, &g, &b); err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse %q", s)
		}
		return nrgba(r, g, b, 1), nil
	}
	return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "unsupported color %q", s)
}

// HexColor returns the #rrggbb form of s, dropping alpha. Unparseable input
// yields "".
func HexColor(s string) string {
	c, err := ParseColor(s)
	if err != nil {
		return ""
	}
	cf, _ := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	return cf.Hex()
}

// expandHex turns #rgb into #rrggbb.
func expandHex(v string) string {
	if len(v) != 4 {
		return v
	}
	return string([]byte{'#', v[1], v[1], v[2], v[2], v[3], v[3]})
}

func nrgba(r, g, b int, a float64) color.NRGBA {
	clamp := func(v int) uint8 { return uint8(min(max(v, 0), 255)) }
	return color.NRGBA{
		R: clamp(r),
		G: clamp(g),
		B: clamp(b),
		A: uint8(min(max(a, 0), 1)*255 + 0.5),
	}
}
