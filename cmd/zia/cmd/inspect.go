package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ziacorp/zia"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "run a script and dump the resulting concept graph as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			c := zia.New()
			logger.Info("session started", zap.String("session_id", c.ID.String()), zap.String("file", args[0]))

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				line := scanner.Text()
				if line == "" {
					continue
				}
				c.Execute(line)
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			if err := enc.Encode(c.Inspect()); err != nil {
				return fmt.Errorf("zia inspect: could not encode graph: %w", err)
			}
			return nil
		},
	}
	return cmd
}
