package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/clientdesk/clientdesk/internal/listdetail"
)

// syncDetail resizes the detail viewport and re-renders its content.
func (m *Model) syncDetail() {
	_, width := m.paneWidths()
	m.detail.Width = max(width-2, 0)
	m.detail.Height = max(m.height-chromeHeight-2, 0)
	m.detail.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.detailBg()))
	m.detail.SetContent(m.renderDetailContent(m.detail.Width))
}

func (m Model) detailBg() string {
	if m.focus == paneDetail {
		return m.theme.FocusBg
	}
	return m.theme.SurfaceAlt
}

func (m Model) detailTitle() string {
	if m.state.HasDetail() {
		return m.state.Detail.Title
	}
	return "Details"
}

// renderDetailContent renders the opened client: subtitle, tab bar, the
// active tab and the available actions.
func (m Model) renderDetailContent(width int) string {
	s := m.state
	bgColor := m.detailBg()
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)

	switch {
	case width <= 0:
		return ""
	case s.SelectedItemID == "":
		return bg.Render("Select a client", styles.MutedText)
	case s.DetailLoading:
		return bg.Render("Loading "+string(s.SelectedItemID)+"...", styles.MutedText)
	case s.DetailError != "":
		return bg.Render("Could not load client: "+s.DetailError, styles.DangerText) + "\n\n" +
			bg.Render("Press y to retry", styles.MutedText)
	case !s.HasDetail():
		return ""
	}

	d := s.Detail
	var b strings.Builder
	if d.Subtitle != "" {
		b.WriteString(bg.Render(d.Subtitle, styles.MutedText))
		b.WriteString("\n")
	}
	if len(s.Items()) > 0 {
		if idx := s.IndexOf(d.ID); idx < 0 {
			b.WriteString(bg.Render("Not on the current page", styles.FaintText))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if len(d.Tabs) > 0 {
		active := min(m.activeTab, len(d.Tabs)-1)
		b.WriteString(m.renderTabBar(d.Tabs, active, bg, styles))
		b.WriteString("\n\n")
		b.WriteString(m.renderTab(d.Tabs[active], width, bg, styles))
		b.WriteString("\n")
	}

	if actions := m.renderActions(d.Actions, bg, styles); actions != "" {
		b.WriteString("\n")
		b.WriteString(actions)
	}
	return b.String()
}

func (m Model) renderTabBar(tabs []listdetail.DetailTab, active int, bg BgStyle, styles Styles) string {
	parts := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		if i == active {
			parts = append(parts, bg.Render("["+tab.Label+"]", styles.AccentText.Bold(true)))
		} else {
			parts = append(parts, bg.Render(" "+tab.Label+" ", styles.MutedText))
		}
	}
	return bg.Join(parts, " ")
}

// renderTab renders a tab body according to its content kind.
func (m Model) renderTab(tab listdetail.DetailTab, width int, bg BgStyle, styles Styles) string {
	switch c := tab.Content.(type) {
	case listdetail.FieldsContent:
		return m.renderFields(c, width, bg, styles)
	case listdetail.TableContent:
		return m.renderTable(c, width)
	case listdetail.TextContent:
		text := strings.TrimSpace(c.Text)
		if text == "" {
			return bg.Render("Nothing here yet", styles.FaintText)
		}
		return lipgloss.NewStyle().
			Width(width).
			Foreground(lipgloss.Color(m.theme.Text)).
			Background(bg.bg).
			Render(text)
	default:
		return ""
	}
}

func (m Model) renderFields(c listdetail.FieldsContent, width int, bg BgStyle, styles Styles) string {
	labelWidth := 0
	for _, f := range c.Fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label))
	}
	lines := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		pad := labelWidth - lipgloss.Width(f.Label) + 2
		value := truncate(f.Value, max(width-labelWidth-2, 8))
		lines = append(lines, bg.Render(f.Label, styles.MutedText)+bg.Spaces(pad)+bg.Render(value, styles.Text))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTable(c listdetail.TableContent, width int) string {
	if len(c.Rows) == 0 {
		return NewBgStyle(m.detailBg()).Render("No rows", m.theme.Styles().FaintText)
	}
	bgColor := lipgloss.Color(m.detailBg())
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Accent)).Background(bgColor).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text)).Background(bgColor).Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border)).Background(bgColor)).
		BorderColumn(false).
		Headers(c.Columns...).
		Rows(c.Rows...).
		Width(width).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	return t.Render()
}

func (m Model) renderActions(actions []listdetail.DetailAction, bg BgStyle, styles Styles) string {
	if len(actions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		style := styles.AccentText
		switch {
		case a.Disabled:
			style = styles.FaintText
		case a.Destructive:
			style = styles.DangerText
		}
		parts = append(parts, bg.Render("‹"+a.Label+"›", style))
	}
	return bg.Join(parts, "  ")
}
