package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/boxes"
	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

// reflowCommand creates the reflow command, which rewrites a document in
// its reflowed box order.
func (c *CLI) reflowCommand() *cobra.Command {
	var (
		flags   optionFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "reflow [document]",
		Short: "Reorder a document's boxes to fill lines",
		Long: `Reorder a document's boxes and write the new order as a document.

  compress        repack boxes so that each line is as full as possible
  align           insert spacers so that wrapped lines fill the frame
  compress-align  both, in that order

Labels are converted to boxes, so the output lists only boxes. The output
format follows the extension of --output (default: <name>.reflow.<ext>).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runReflow(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	flags.register(cmd, errors.ModeCompress, false)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output document (default: <input>.reflow.<ext>)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runReflow(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	doc, err := boxes.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	out, cached, err := runner.ReflowWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return fmt.Errorf("reflow: %w", err)
	}

	if output == "" {
		ext := filepath.Ext(input)
		output = strings.TrimSuffix(input, ext) + ".reflow" + ext
	}
	reflowed := boxes.Document{Width: doc.Width, Padding: doc.Padding, Boxes: out}
	if err := boxes.WriteFile(reflowed, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	spacers := 0
	for _, b := range out {
		if b.Spacer {
			spacers++
		}
	}
	printSuccess("Reflowed %s (%s)", input, opts.Mode)
	printFile(output)
	printKeyValue("boxes", fmt.Sprint(len(out)-spacers))
	printKeyValue("spacers", fmt.Sprint(spacers))
	printKeyValue("cache", cacheLabel(cached))
	return nil
}
