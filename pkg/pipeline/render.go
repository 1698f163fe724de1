package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/flowlayout/pkg/engine"
	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, res engine.Result, docHash string, opts Options) (map[string][]byte, error) {
	svgOpts := svgOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = sink.RenderJSON(res,
				sink.WithJSONGravity(opts.Gravity),
				sink.WithJSONMode(opts.Mode),
				sink.WithJSONDocumentHash(docHash))
		case FormatSVG:
			data = sink.RenderSVG(res, svgOpts...)
		case FormatPNG, FormatPDF:
			data, err = sink.RenderRaster(ctx, res, format, opts.Scale, svgOpts...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func svgOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Labels {
		out = append(out, sink.WithLabels())
	}
	if opts.Frame {
		out = append(out, sink.WithFrame())
	}
	return out
}
