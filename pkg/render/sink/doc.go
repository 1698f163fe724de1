// Package sink writes layout results in output formats.
//
//   - [RenderSVG]: one rectangle per placed box; spacers drawn as dashed rules
//   - [RenderJSON]: frame size, line inventory and box rectangles
//   - [RenderRaster]: the SVG converted to PNG or PDF with rsvg-convert
//
// Renderers are configured with functional options and never modify the
// result they are given.
package sink
