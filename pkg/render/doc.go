// Package render converts rendered layouts between output formats.
//
// # Overview
//
// The [sink] subpackage draws a layout result as SVG or exports it as JSON.
// This package turns any SVG into PDF or PNG using the external rsvg-convert
// tool (from librsvg). Set FLOWLAYOUT_RSVG to use a different binary:
//
//	svg := sink.RenderSVG(result, sink.WithLabels())
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/flowlayout/pkg/render/sink
package render
