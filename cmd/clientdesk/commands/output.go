package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/clientdesk/clientdesk/internal/clients"
	"github.com/clientdesk/clientdesk/internal/listdetail"
)

type format string

const (
	formatText format = "text"
	formatJSON format = "json"
	formatYAML format = "yaml"
)

func parseFormat(value string) (format, error) {
	switch f := format(strings.ToLower(strings.TrimSpace(value))); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	case "yml":
		return formatYAML, nil
	case "":
		return formatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", value)
	}
}

func writeStructured(w io.Writer, f format, v any) error {
	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", f)
}

func writeList(w io.Writer, f format, page clients.Page) error {
	if f != formatText {
		return writeStructured(w, f, page)
	}

	rows := make([][]string, 0, len(page.Data))
	for _, s := range page.Data {
		rows = append(rows, []string{s.ID, s.DisplayName(), s.Company, s.Status, clients.FormatCents(s.BalanceCents)})
	}
	fmt.Fprintln(w, plainTable([]string{"ID", "NAME", "COMPANY", "STATUS", "BALANCE"}, rows))
	fmt.Fprintf(w, "page %d/%d, %d clients\n", page.Page, max(page.TotalPages, 1), page.Total)
	return nil
}

func writeDetail(w io.Writer, f format, d clients.Detail) error {
	if f != formatText {
		return writeStructured(w, f, d)
	}

	fmt.Fprintln(w, d.Title)
	if d.Subtitle != "" {
		fmt.Fprintln(w, d.Subtitle)
	}
	for _, tab := range d.Tabs {
		fmt.Fprintf(w, "\n== %s ==\n", tab.Label)
		switch c := tab.Content.(type) {
		case listdetail.FieldsContent:
			rows := make([][]string, 0, len(c.Fields))
			for _, field := range c.Fields {
				rows = append(rows, []string{field.Label, field.Value})
			}
			fmt.Fprintln(w, plainTable(nil, rows))
		case listdetail.TableContent:
			if len(c.Rows) == 0 {
				fmt.Fprintln(w, "(none)")
				continue
			}
			fmt.Fprintln(w, plainTable(c.Columns, c.Rows))
		case listdetail.TextContent:
			text := strings.TrimSpace(c.Text)
			if text == "" {
				text = "(none)"
			}
			fmt.Fprintln(w, text)
		}
	}

	var enabled []string
	for _, a := range d.Actions {
		if !a.Disabled {
			enabled = append(enabled, a.ID)
		}
	}
	if len(enabled) > 0 {
		fmt.Fprintf(w, "\nactions: %s\n", strings.Join(enabled, ", "))
	}
	return nil
}

// plainTable renders rows as borderless aligned columns.
func plainTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(false).
		Rows(rows...).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return lipgloss.NewStyle().PaddingRight(2)
		})
	if len(headers) > 0 {
		t = t.Headers(headers...)
	}
	return t.Render()
}
