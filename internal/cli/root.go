package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/buildinfo"
	"github.com/matzehuels/flowlayout/pkg/observability"
)

// RootCommand builds the flowlayout command tree.
//
// Persistent flags:
//   - --verbose (-v): debug logging, plus engine and cache events
//   - --log-format: text (default), json or logfmt
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose   bool
		logFormat string
	)

	root := &cobra.Command{
		Use:   appName,
		Short: "Flowlayout wraps boxes into lines",
		Long: `Flowlayout lays out a sequence of boxes left to right, wrapping to a new
line when the frame is full. It can reorder boxes to use fewer lines and
justify wrapped lines with spacers.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := c.SetLogFormat(logFormat); err != nil {
				return err
			}
			if verbose {
				c.SetLogLevel(LogDebug)
				observability.Register(observability.NewLogHooks(c.Logger))
			}
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&logFormat, "log-format", "text", "log encoding: text, json or logfmt")
	_ = root.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeValues(logFormatNames(), toComplete, false), cobra.ShellCompDirectiveNoFileComp
	})

	for _, cmd := range []*cobra.Command{
		c.layoutCommand(),
		c.reflowCommand(),
		c.previewCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	} {
		root.AddCommand(cmd)
	}
	return root
}
