// Command flowlayout lays out box documents from the command line and over
// HTTP. See "flowlayout --help".
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/flowlayout/internal/cli"
	flowerrors "github.com/matzehuels/flowlayout/pkg/errors"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the exit status: 130 after an
// interrupt, 2 for bad input, 1 for any other failure.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return flowerrors.ExitCode(err)
}
