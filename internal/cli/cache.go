package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local layout cache",
		Long: `Layout and reflow results are cached on disk, keyed by a hash of the
document and the options that affect the result.`,
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "cache directory (default: XDG cache dir)")

	resolveDir := func() (string, error) {
		if dir != "" {
			return dir, nil
		}
		d, err := cacheDir()
		if err != nil {
			return "", fmt.Errorf("get cache dir: %w", err)
		}
		return d, nil
	}

	cmd.AddCommand(c.cacheClearCommand(resolveDir))
	cmd.AddCommand(c.cachePathCommand(resolveDir))
	return cmd
}

func (c *CLI) cacheClearCommand(resolveDir func() (string, error)) *cobra.Command {
	var expired bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached layouts and reflows",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir()
			if err != nil {
				return err
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			store, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			fc := store.(*cache.FileCache)

			sweep, what := fc.Clear, "cached"
			if expired {
				sweep, what = fc.Prune, "expired"
			}
			n, err := sweep()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Removed %d %s entries", n, what)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&expired, "expired", false, "only remove expired or unreadable entries")
	return cmd
}

func (c *CLI) cachePathCommand(resolveDir func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
