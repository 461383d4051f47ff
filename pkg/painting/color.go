package painting

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/bleed/pkg/random"
)

// RandomColor returns a uniformly random RGB color with the given alpha,
// formatted as a CSS rgba() string.
func RandomColor(src random.Source, alpha float64) string {
	c := colorful.Color{R: src.Float64(), G: src.Float64(), B: src.Float64()}
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %.3f)", r, g, b, min(max(alpha, 0), 1))
}
