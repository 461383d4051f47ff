// Package sink provides drawing surfaces for bleed paintings.
//
// # Overview
//
// Every type here implements painting.Surface, so the painter can draw onto
// any of them, or onto several at once through [Multi]:
//
//   - [SVG]: filled paths in an SVG document
//   - [Raster]: an anti-aliased RGBA image, encoded with [Raster.PNG]
//   - [Braille]: a terminal preview made of braille micro-pixels
//   - [Recorder]: the raw polygons, exported with [Recorder.JSON]
//
// # Colors
//
// The painter passes colors as CSS strings. [ParseColor] understands
// rgba(r, g, b, a), rgb(r, g, b) and #rrggbb / #rgb. SVG passes the string
// through unchanged; the raster and braille surfaces parse it.
//
// # Usage
//
//	svg := sink.NewSVG(800, 600, sink.WithBackground("#fbf8f1"))
//	img, err := sink.NewRaster(800, 600, sink.WithRasterBackground("#fbf8f1"))
//	p := painting.New(cfg, sink.Multi(svg, img), src)
//	shape, err := p.PaintOnce(ctx)
//	os.WriteFile("out.svg", svg.Bytes(), 0o644)
package sink
