package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziacorp/zia"
)

func newRunCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "run commands from a file, or a REPL over stdin if no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			if watch {
				if len(args) == 0 {
					return fmt.Errorf("zia run --watch requires a file argument")
				}
				return runWatch(cmd, logger, args[0])
			}

			c := zia.New()
			logger.Info("session started", zap.String("session_id", c.ID.String()))

			if len(args) == 0 {
				return runLines(cmd, c, os.Stdin, cmd.OutOrStdout())
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return runLines(cmd, c, f, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "re-run the file, against a fresh graph, whenever it changes")
	return cmd
}

// runLines executes each non-blank line of src against c in order,
// printing any non-empty result to out. A command that fails prints its
// diagnostic like any other result and the loop goes on to the next
// line; only an error reading src ends it early.
func runLines(cmd *cobra.Command, c *zia.Context, src io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		result := c.Execute(line)
		if result != "" {
			fmt.Fprintln(out, result)
		}
	}
	return scanner.Err()
}

// runWatch re-executes path's whole script against a fresh Context
// every time the file changes, debouncing bursts of writes the way
// editors tend to produce them. Each re-run starts from an empty
// graph: --watch is for iterating on a script file, not for
// accumulating state across edits.
func runWatch(cmd *cobra.Command, logger *zap.Logger, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("zia: could not start file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("zia: could not watch %s: %w", path, err)
	}

	runOnce := func() {
		c := zia.New()
		logger.Info("session started", zap.String("session_id", c.ID.String()), zap.String("file", path))
		f, err := os.Open(path)
		if err != nil {
			logger.Error("could not open watched file", zap.Error(err))
			return
		}
		defer f.Close()
		if err := runLines(cmd, c, f, cmd.OutOrStdout()); err != nil {
			logger.Error("error running watched file", zap.Error(err))
		}
	}

	runOnce()

	var debounce *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Info("watched file changed", zap.String("file", event.Name), zap.String("operation", event.Op.String()))
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, runOnce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", zap.Error(err))
		}
	}
}
