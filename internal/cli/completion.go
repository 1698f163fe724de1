package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for flowlayout. Besides subcommands and
flags, the scripts complete the values of --gravity, --mode, --height-mode
and --format.

  $ source <(flowlayout completion bash)
  $ flowlayout completion zsh > "${fpath[1]}/_flowlayout"
  $ flowlayout completion fish > ~/.config/fish/completions/flowlayout.fish
  PS> flowlayout completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

// flagValues maps option flags to the values shells should offer for them.
var flagValues = map[string][]string{
	"gravity":     {"start", "center", "end", "align"},
	"mode":        {errors.ModeNone, errors.ModeCompress, errors.ModeAlign, errors.ModeCompressAlign},
	"height-mode": {"unspecified", "at-most", "exactly"},
	"format":      pipeline.ValidFormats,
}

// registerValueCompletions installs value completion for every flag in
// flagValues that cmd defines. --format completes one element of its
// comma-separated list at a time.
func registerValueCompletions(cmd *cobra.Command) {
	for name, values := range flagValues {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		list := name == "format"
		_ = cmd.RegisterFlagCompletionFunc(name, func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completeValues(values, toComplete, list), cobra.ShellCompDirectiveNoFileComp
		})
	}
}

func completeValues(values []string, toComplete string, list bool) []string {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); list && i >= 0 {
		prefix, toComplete = toComplete[:i+1], toComplete[i+1:]
	}
	var out []string
	for _, v := range values {
		if strings.HasPrefix(v, toComplete) {
			out = append(out, prefix+v)
		}
	}
	return out
}
