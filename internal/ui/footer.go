package ui

import (
	"strings"

	"taskboard/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

// footerHint is a short key hint for the footer bar, terser than the help
// overlay text.
type footerHint struct {
	key  string
	desc string
}

var footerHints = []footerHint{
	{"↑↓", "Cards"},
	{"←→", "Columns"},
	{"⏎", "Open"},
	{"d", "Detail"},
	{"r", "Refresh"},
	{"?", "Help"},
	{"q", "Quit"},
}

// renderFooter renders key pills on the left and the repository with the
// refresh status on the right. A toast replaces the hints while shown.
func (m *App) renderFooter() string {
	right := m.styles.footerMuted.Render(m.footerStatus())
	rightWidth := lipgloss.Width(right)

	var left string
	if m.toast != "" {
		left = m.styles.toast.Render(m.toast)
	} else {
		left = m.renderHints(m.width - rightWidth - 2)
	}

	spacing := m.width - lipgloss.Width(left) - rightWidth
	if spacing < 2 {
		spacing = 2
	}
	return left + strings.Repeat(" ", spacing) + right
}

func (m *App) footerStatus() string {
	parts := []string{"Powered by GitHub Issues", m.links.FullName()}
	if !m.state.LastRefresh.IsZero() {
		parts = append(parts, "updated "+domain.TimeAgo(m.state.LastRefresh, m.now()))
	}
	if m.autoRefresh && m.refreshInterval > 0 {
		parts = append(parts, "every "+m.refreshInterval.String())
	} else {
		parts = append(parts, "auto-refresh off")
	}
	return strings.Join(parts, " · ")
}

// renderHints drops hints from the end until the rest fit in width.
func (m *App) renderHints(width int) string {
	hints := footerHints
	for len(hints) > 0 {
		out := m.joinHints(hints)
		if lipgloss.Width(out) <= width {
			return out
		}
		hints = hints[:len(hints)-1]
	}
	return ""
}

func (m *App) joinHints(hints []footerHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, m.styles.keyPill.Render(" "+h.key+" ")+" "+m.styles.keyDesc.Render(h.desc))
	}
	return strings.Join(parts, "  ")
}
