package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/boxes"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags       optionFlags
		output      string
		noCache     bool
		concurrency int
		showLines   bool
	)

	cmd := &cobra.Command{
		Use:   "layout [document...]",
		Short: "Lay out box documents and write JSON, SVG, PNG or PDF",
		Long: `Lay out box documents and write the result.

A document lists boxes (width, height, margin) and/or text labels in JSON,
TOML or YAML. Boxes are placed left to right and wrap to a new line when the
frame is full. With --mode the box order is first compressed to use fewer
lines and/or aligned so wrapped lines fill the frame.

Outputs are written next to each input (<name>.layout.json, <name>.svg, ...)
unless --output is given for a single document.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if output != "" && len(args) > 1 {
				return fmt.Errorf("--output requires a single document")
			}
			return c.runLayout(cmd.Context(), args, opts, output, noCache, concurrency, showLines)
		},
	}

	flags.register(cmd, pipeline.DefaultMode, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: next to the input)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&concurrency, "jobs", "j", pipeline.DefaultBatchConcurrency, "documents laid out in parallel")
	cmd.Flags().BoolVar(&showLines, "lines", false, "print a table of the computed lines")

	return cmd
}

// runLayout reads every document, runs the pipeline and writes artifacts.
func (c *CLI) runLayout(ctx context.Context, inputs []string, opts pipeline.Options, output string, noCache bool, concurrency int, showLines bool) error {
	docs := make([]boxes.Document, len(inputs))
	for i, in := range inputs {
		doc, err := boxes.ReadFile(in)
		if err != nil {
			return fmt.Errorf("load %s: %w", in, err)
		}
		docs[i] = doc
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Laying out %d document(s)...", len(docs)))
	opts.OnDocument = func(done, total int) {
		spinner.SetMessage("Laid out %d/%d documents...", done, total)
	}
	spinner.Start()

	results, err := runner.ExecuteBatch(ctx, docs, opts, concurrency)
	if err != nil {
		spinner.Fail("Layout failed")
		return err
	}
	spinner.Stop()

	if spinner.Interrupted() {
		return ctx.Err()
	}

	multi := len(opts.Formats) > 1
	for i, res := range results {
		printSuccess("Laid out %s", inputs[i])
		for _, format := range opts.Formats {
			path := outputPath(inputs[i], output, format, multi)
			if err := os.WriteFile(path, res.Artifacts[format], 0644); err != nil {
				return fmt.Errorf("write output %s: %w", path, err)
			}
			printFile(path)
		}
		fmt.Fprintln(stdout, formatStats(res))
		if hidden := res.Stats.LineCount - res.Layout.ShownLines; hidden > 0 {
			printWarning("%d line(s) hidden by --max-lines", hidden)
		}
		if showLines && len(res.Layout.Lines) > 0 {
			fmt.Fprintln(stdout, lineTable(res.Layout))
		}
	}
	if len(results) > 1 {
		prog.done("laid out batch", "documents", len(results), "jobs", concurrency)
	}

	if !hasFormat(opts.Formats, pipeline.FormatSVG) && len(inputs) == 1 {
		printNewline()
		printNextStep("Render", appName+" layout -f svg "+inputs[0])
	}
	return nil
}

func hasFormat(formats []string, f string) bool {
	for _, x := range formats {
		if x == f {
			return true
		}
	}
	return false
}
