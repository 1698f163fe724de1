package sink

import (
	"context"

	"github.com/matzehuels/flowlayout/pkg/engine"
	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/render"
)

// Raster formats, produced by converting the SVG rendering.
const (
	RasterPNG = "png"
	RasterPDF = "pdf"
)

// RenderRaster draws res as SVG and converts it to format. scale only
// affects PNG output.
func RenderRaster(ctx context.Context, res engine.Result, format string, scale float64, svgOpts ...SVGOption) ([]byte, error) {
	svg := RenderSVG(res, svgOpts...)
	switch format {
	case RasterPNG:
		return render.ToPNG(ctx, svg, scale)
	case RasterPDF:
		return render.ToPDF(ctx, svg)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "no raster conversion to %q", format)
}
