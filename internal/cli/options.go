package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

// optionFlags binds pipeline options to command flags. Values from
// --config are loaded first; flags given on the command line win.
type optionFlags struct {
	config  string
	formats string
	opts    pipeline.Options
}

func (f *optionFlags) register(cmd *cobra.Command, defaultMode string, withRender bool) {
	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "TOML file with default options")
	fs.IntVar(&f.opts.Width, "width", 0, "frame width (default: document width, else 800)")
	fs.StringVarP(&f.opts.Gravity, "gravity", "g", pipeline.DefaultGravity, "line alignment: start, center, end, align")
	fs.IntVar(&f.opts.LinePadding, "line-padding", 0, "vertical gap between lines")
	fs.IntVar(&f.opts.MaxLines, "max-lines", 0, "show at most this many lines (0: unlimited)")
	fs.StringVar(&f.opts.HeightMode, "height-mode", "", "height constraint: unspecified, at-most, exactly")
	fs.IntVar(&f.opts.Height, "height", 0, "height for --height-mode")
	fs.StringVarP(&f.opts.Mode, "mode", "m", defaultMode, "reflow before layout: none, compress, align, compress-align")
	fs.BoolVar(&f.opts.Refresh, "refresh", false, "ignore cached results")

	if withRender {
		fs.StringVarP(&f.formats, "format", "f", "", "output formats, comma separated: json, svg, png, pdf (default json)")
		fs.BoolVar(&f.opts.Labels, "labels", false, "draw box ids in SVG output")
		fs.BoolVar(&f.opts.Frame, "frame", false, "draw the frame outline in SVG output")
		fs.Float64Var(&f.opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	}
	registerValueCompletions(cmd)
}

// resolve returns the effective options for cmd.
func (f *optionFlags) resolve(cmd *cobra.Command) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.config != "" {
		loaded, err := pipeline.LoadOptionsFile(f.config)
		if err != nil {
			return opts, fmt.Errorf("load config: %w", err)
		}
		opts = loaded
	}

	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Lookup(name) != nil && (fs.Changed(name) || f.config == "") {
			apply()
		}
	}
	set("width", func() { opts.Width = f.opts.Width })
	set("gravity", func() { opts.Gravity = f.opts.Gravity })
	set("line-padding", func() { opts.LinePadding = f.opts.LinePadding })
	set("max-lines", func() { opts.MaxLines = f.opts.MaxLines })
	set("height-mode", func() { opts.HeightMode = f.opts.HeightMode })
	set("height", func() { opts.Height = f.opts.Height })
	set("mode", func() { opts.Mode = f.opts.Mode })
	set("format", func() { opts.Formats = parseFormats(f.formats) })
	set("labels", func() { opts.Labels = f.opts.Labels })
	set("frame", func() { opts.Frame = f.opts.Frame })
	set("scale", func() { opts.Scale = f.opts.Scale })
	opts.Refresh = f.opts.Refresh

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}
