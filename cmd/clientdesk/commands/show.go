package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clientdesk/clientdesk/internal/app"
	"github.com/clientdesk/clientdesk/internal/clients"
	"github.com/clientdesk/clientdesk/internal/listdetail"
)

func (c *CLI) newShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one client's detail view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(output)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			client, err := app.NewClient(cfg, zerolog.Nop())
			if err != nil {
				return err
			}

			detail, err := clients.NewAdapter(client).LoadDetail(cmd.Context(), listdetail.EntityID(args[0]))
			if err != nil {
				return err
			}
			return writeDetail(c.out, format, detail)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}
