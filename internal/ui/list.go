package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clientdesk/clientdesk/internal/clients"
	"github.com/clientdesk/clientdesk/internal/listdetail"
)

// renderContent lays out the list and detail panes for the current mode.
func (m Model) renderContent() string {
	height := m.height - chromeHeight
	listWidth, detailWidth := m.paneWidths()

	var panes []string
	if listWidth > 0 {
		panes = append(panes, m.renderTitledBox(m.listTitle(), m.renderList(listWidth-2, height-2), listWidth, height, m.focus == paneList))
	}
	if detailWidth > 0 {
		panes = append(panes, m.renderTitledBox(m.detailTitle(), m.detail.View(), detailWidth, height, m.focus == paneDetail))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panes...)
}

func (m Model) paneWidths() (list, detail int) {
	return paneWidths(m.state.Responsive.Mode, m.width, m.state.SelectedItemID != "")
}

// listTitle shows the total, the page position and any active filter.
func (m Model) listTitle() string {
	s := m.state
	parts := []string{"Clients"}
	if s.HasList {
		parts[0] = fmt.Sprintf("Clients (%d)", s.List.Total)
		parts = append(parts, fmt.Sprintf("%d/%d", s.List.Page, max(s.List.TotalPages, 1)))
	}
	if status := s.Params.Filters["status"]; status != "" {
		parts = append(parts, titleCase(status))
	}
	if s.Params.SortField != "" {
		arrow := "↑"
		if s.Params.SortDirection == listdetail.SortDesc {
			arrow = "↓"
		}
		parts = append(parts, strings.ReplaceAll(s.Params.SortField, "_", " ")+arrow)
	}
	return strings.Join(parts, " · ")
}

// renderList renders the rows of the current page that fit in height lines,
// scrolled so the cursor stays visible.
func (m Model) renderList(width, height int) string {
	s := m.state
	bgColor := m.theme.SurfaceAlt
	if m.focus == paneList {
		bgColor = m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)

	if !s.HasList {
		switch {
		case s.ListError != "":
			return bg.Render("Could not load clients: "+s.ListError, styles.DangerText) + "\n" +
				bg.Render("Press r to retry", styles.MutedText)
		case s.ListLoading:
			return bg.Render("Loading clients...", styles.MutedText)
		default:
			return ""
		}
	}

	items := s.Items()
	if len(items) == 0 {
		msg := "No clients"
		if s.Params.Query != "" {
			msg = fmt.Sprintf("No clients match %q", s.Params.Query)
		}
		return bg.Render(msg, styles.MutedText)
	}

	lines := make([]string, 0, len(items)+1)
	if s.IsOffline() {
		lines = append(lines, bg.Render("Offline, showing the last loaded page", styles.WarningText))
	}
	visible := max(height-len(lines), 1)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(items))
	for i := start; i < end; i++ {
		item := items[i]
		selected := i == m.cursor && m.focus == paneList
		rowBg := bgColor
		if selected {
			rowBg = m.theme.SelectionBg
		}
		content := m.formatListRow(item, width, rowBg, selected)
		lines = append(lines, lipgloss.NewStyle().Background(lipgloss.Color(rowBg)).Width(width).Render(content))
	}
	return strings.Join(lines, "\n")
}

// formatListRow formats one client row.
// Format: "▸ [x] Name · Company   status  balance"
func (m Model) formatListRow(item clients.Summary, width int, bgColor string, cursor bool) string {
	bg := NewBgStyle(bgColor)
	s := m.state
	id := item.EntityID()

	marker := " "
	if id == s.SelectedItemID {
		marker = "▸"
	}
	check := ""
	if s.Selection.Mode == listdetail.SelectionMultiple {
		check = "[ ] "
		if s.IsSelected(id) {
			check = "[x] "
		}
	}

	balance := clients.FormatCents(item.BalanceCents)
	status := item.Status
	fixed := len(marker) + 1 + len(check) + len(status) + len(balance) + 4
	nameWidth := max(width-fixed, 10)

	name := item.DisplayName()
	if item.Company != "" && item.Name != "" {
		name += " · " + item.Company
	}

	var textStyle, mutedStyle, statusStyle lipgloss.Style
	if cursor {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		textStyle, mutedStyle, statusStyle = sel, sel, sel
	} else {
		styles := m.theme.Styles()
		textStyle = styles.Text
		mutedStyle = styles.MutedText
		statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StatusColor(status)))
	}

	name = truncate(name, nameWidth)
	pad := max(nameWidth-lipgloss.Width(name), 0)

	return bg.Render(marker, textStyle) + bg.Space() +
		bg.Render(check, mutedStyle) +
		bg.Render(name, textStyle) + bg.Spaces(pad+1) +
		bg.Render(status, statusStyle) + bg.Spaces(2) +
		bg.Render(balance, mutedStyle)
}

// titleCase converts a snake_case or lowercase string to Title Case.
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
