package commands

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clientdesk/clientdesk/internal/app"
	"github.com/clientdesk/clientdesk/internal/clients"
	"github.com/clientdesk/clientdesk/internal/listdetail"
)

func (c *CLI) newListCmd() *cobra.Command {
	var (
		query   string
		page    int
		perPage int
		sort    string
		desc    bool
		status  string
		filters map[string]string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			params := cfg.ListDefaults().WithQuery(query)
			if perPage > 0 {
				params = params.WithPerPage(perPage)
			}
			if sort != "" {
				dir := listdetail.SortAsc
				if desc {
					dir = listdetail.SortDesc
				}
				params = params.WithSort(sort, dir)
			}
			if status != "" {
				if filters == nil {
					filters = map[string]string{}
				}
				filters["status"] = status
			}
			if len(filters) > 0 {
				params = params.WithFilters(filters)
			}

			// The page goes last; the other With calls reset it.
			lc := app.NewClientContext(cfg, client, params.WithPage(page), nil)
			defer lc.Close()
			lc.Mount(cmd.Context())

			snap := lc.Snapshot()
			if snap.ListError != "" {
				return errors.New(snap.ListError)
			}
			return writeList(c.out, format, snap.List)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&query, "query", "q", "", "search text")
	flags.IntVarP(&page, "page", "p", 1, "page number")
	flags.IntVar(&perPage, "per-page", 0, "rows per page (default from config)")
	flags.StringVarP(&sort, "sort", "s", "", "sort field: "+strings.Join(clients.SortFields, ", "))
	flags.BoolVar(&desc, "desc", false, "sort descending")
	flags.StringVar(&status, "status", "", "filter by status: active, lead, inactive or archived")
	flags.StringToStringVar(&filters, "filter", nil, "extra key=value filters passed to the API")
	flags.StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}
