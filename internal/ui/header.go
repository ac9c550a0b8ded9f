package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/clientdesk/clientdesk/internal/listdetail"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.state.Responsive.Mode == listdetail.LayoutMobile
	s := m.state

	parts := []string{bg.Render("clientdesk", styles.Logo)}

	switch {
	case s.IsOffline():
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	case s.HasList:
		parts = append(parts, bg.Render("● ONLINE", styles.SuccessText))
	default:
		parts = append(parts, bg.Render("● CONNECTING", styles.WarningText))
	}

	if s.HasList {
		label := "Clients:"
		if compact {
			label = "N:"
		}
		parts = append(parts,
			bg.Render(label, styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", s.List.Total), styles.Text))
	}

	if n := len(s.Selection.IDs); n > 0 {
		parts = append(parts,
			bg.Render("Selected:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", n), styles.AccentText))
	}

	if s.ListLoading || s.DetailLoading || s.SearchPending {
		parts = append(parts, m.spinner.View())
	}

	if ts := formatTimestamp(s.LastUpdated, m.now); ts != "" && !compact {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if s.ListError != "" {
		maxErr := 60
		if compact {
			maxErr = 24
		}
		label := "ERROR"
		if s.ListErrorKind == listdetail.PaginationError {
			label = "PAGE"
		}
		parts = append(parts,
			bg.Render(label, styles.DangerText)+bg.Space()+
				bg.Render(truncate(classifyError(s.ListError), maxErr), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders either the search box or the key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.searching {
		hint := bg.Render("enter apply · esc clear", styles.FaintText)
		return styles.Header.Width(m.width).Render(m.search.View() + bg.Spaces(2) + hint)
	}

	bar := m.help.ShortHelpView(m.keys.ShortHelp())
	segments := []string{bar}
	if q := m.state.SearchText; q != "" {
		segments = append(segments, bg.Render("/"+truncate(q, 18), styles.AccentText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+bg.Render(":", styles.FaintText)+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// formatTimestamp formats the last update time with a relative indicator.
func formatTimestamp(at, now time.Time) string {
	if at.IsZero() {
		return ""
	}
	since := now.Sub(at)
	out := at.Format("15:04:05")
	switch {
	case since < time.Minute:
		out += " (now)"
	case since < time.Hour:
		out += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		out += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return out
}

// classifyError shortens common transport failures.
func classifyError(msg string) string {
	switch {
	case strings.Contains(msg, "connection refused"):
		return "server unreachable"
	case strings.Contains(msg, "no such host"):
		return "host not found"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "timed out"
	default:
		return msg
	}
}

// statusBadge renders a client status as a colored pill.
func (m Model) statusBadge(status string) string {
	if status == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Background)).
		Background(lipgloss.Color(m.theme.StatusColor(status))).
		Padding(0, 1).
		Render(status)
}
