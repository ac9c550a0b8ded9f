package commands

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clientdesk/clientdesk/internal/logtail"
)

func (c *CLI) newLogsCmd() *cobra.Command {
	var (
		lines     int
		level     string
		component string
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the tail of the clientdesk log file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			minLevel, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
			if err != nil {
				return fmt.Errorf("parse level: %w", err)
			}

			entries, err := logtail.Tail(cfg.LogFile, logtail.Options{
				Lines:     lines,
				MinLevel:  minLevel,
				Component: component,
			})
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintf(c.out, "no log entries in %s\n", cfg.LogFile)
				return nil
			}
			return logtail.Render(c.out, entries, !noColor)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&lines, "lines", "n", 200, "number of lines to show (0 for all)")
	flags.StringVar(&level, "level", "debug", "minimum level to show")
	flags.StringVar(&component, "component", "", "only show lines from this component (api or refresher)")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}
