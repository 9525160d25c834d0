// Package cmd builds the zia command-line tool: a cobra root command
// with "run" and "inspect" subcommands, following cmd/cue/cmd's shape
// of one *cobra.Command tree built in New and driven by Main.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// verbose is bound to the root command's persistent "-v" flag; every
// subcommand reads it through newLogger rather than taking its own
// copy of the flag.
var verbose bool

// New builds the zia root command.
func New(args []string) *cobra.Command {
	root := &cobra.Command{
		Use:   "zia",
		Short: "zia runs commands against a concept graph",

		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "use development (human-readable) logging instead of production JSON")
	root.AddCommand(newRunCmd())
	root.AddCommand(newInspectCmd())
	root.SetArgs(args)
	return root
}

// newLogger builds the zap logger every subcommand shares: development
// config when -v/--verbose is set (readable console output), production
// JSON otherwise.
func newLogger() *zap.Logger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		// A logger that fails to construct means the process's stderr
		// itself is unusable; there is nothing left to log this to.
		fmt.Fprintf(os.Stderr, "zia: could not initialize logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// Main runs the zia tool and returns the code for passing to os.Exit.
func Main() int {
	root := New(os.Args[1:])
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
