// Package render provides output conversion for bleed paintings.
//
// # Overview
//
// Paintings are drawn onto the surfaces in the [sink] subpackage. This
// package holds what sits after a surface: converting a finished SVG
// document into other formats.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := s.Bytes()
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// PNG output does not need librsvg: [sink.Raster] rasterizes natively.
// [ToPNG] is kept for callers that want librsvg's anti-aliasing of an
// existing SVG.
//
// # Surfaces
//
// The [sink] subpackage implements painting.Surface for SVG, raster images,
// braille terminal previews and a JSON recorder.
package render
