package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cubetris/internal/cli"
	cubeerrors "github.com/matzehuels/cubetris/pkg/errors"
)

// Exit codes. Usage errors (a bad flag, config or catalog) exit with 2 so
// scripts can tell them apart from I/O failures.
const (
	exitError     = 1
	exitUsage     = 2
	exitInterrupt = 130 // Standard shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(exitCode(run(ctx)))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupt
	case cubeerrors.IsDomain(err):
		fmt.Fprintln(os.Stderr, "cubetris:", cubeerrors.UserMessage(err))
		return exitUsage
	default:
		fmt.Fprintln(os.Stderr, "cubetris:", err)
		return exitError
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Apply --verbose before the root command installs the logger.
	rootPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if rootPreRun != nil {
			return rootPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
