package ui

import (
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/ui/theme"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// styles is the set of lipgloss styles derived from one palette. It is
// rebuilt whenever the theme changes.
type styles struct {
	header    lipgloss.Style
	subtitle  lipgloss.Style
	version   lipgloss.Style
	statCount lipgloss.Style
	statLabel lipgloss.Style
	action    lipgloss.Style
	actionKey lipgloss.Style

	column        lipgloss.Style
	columnFocused lipgloss.Style
	columnTitle   map[domain.Category]lipgloss.Style
	notice        lipgloss.Style
	noticeError   lipgloss.Style

	cardTitle    lipgloss.Style
	cardBody     lipgloss.Style
	cardMeta     lipgloss.Style
	cardNumber   lipgloss.Style
	cardSelected lipgloss.Style

	detail      lipgloss.Style
	detailTitle lipgloss.Style

	footerMuted lipgloss.Style
	keyPill     lipgloss.Style
	keyDesc     lipgloss.Style
	toast       lipgloss.Style
	errorText   lipgloss.Style

	helpOverlay       lipgloss.Style
	helpTitle         lipgloss.Style
	helpSectionHeader lipgloss.Style
	helpKey           lipgloss.Style
	helpDesc          lipgloss.Style
	helpDivider       lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	laneColor := map[domain.Category]lipgloss.AdaptiveColor{
		domain.CategoryTodo:       p.Todo,
		domain.CategoryInProgress: p.InProgress,
		domain.CategoryDone:       p.Done,
	}
	titles := make(map[domain.Category]lipgloss.Style, len(laneColor))
	for c, col := range laneColor {
		titles[c] = lipgloss.NewStyle().Foreground(col).Bold(true)
	}

	return styles{
		header:    lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		subtitle:  lipgloss.NewStyle().Foreground(p.TextMuted),
		version:   lipgloss.NewStyle().Foreground(p.TextMuted).Italic(true),
		statCount: lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		statLabel: lipgloss.NewStyle().Foreground(p.TextMuted),
		action:    lipgloss.NewStyle().Foreground(p.Text),
		actionKey: lipgloss.NewStyle().Foreground(p.Link).Bold(true),

		column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		columnFocused: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		columnTitle: titles,
		notice:      lipgloss.NewStyle().Foreground(p.TextMuted).Italic(true),
		noticeError: lipgloss.NewStyle().Foreground(p.Error).Bold(true),

		cardTitle:    lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		cardBody:     lipgloss.NewStyle().Foreground(p.TextMuted),
		cardMeta:     lipgloss.NewStyle().Foreground(p.TextMuted),
		cardNumber:   lipgloss.NewStyle().Foreground(p.Link),
		cardSelected: lipgloss.NewStyle().Background(p.Selected),

		detail: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		detailTitle: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),

		footerMuted: lipgloss.NewStyle().Foreground(p.TextMuted),
		keyPill:     lipgloss.NewStyle().Foreground(p.Text).Background(p.Selected).Bold(true),
		keyDesc:     lipgloss.NewStyle().Foreground(p.TextMuted),
		toast:       lipgloss.NewStyle().Foreground(p.Done).Bold(true),
		errorText:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),

		helpOverlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(1, 3),
		helpTitle:         lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		helpSectionHeader: lipgloss.NewStyle().Foreground(p.InProgress).Bold(true),
		helpKey:           lipgloss.NewStyle().Foreground(p.Link).Bold(true),
		helpDesc:          lipgloss.NewStyle().Foreground(p.Text),
		helpDivider:       lipgloss.NewStyle().Foreground(p.Border),
	}
}

// buildMarkdownRenderer returns a renderer for issue bodies. "plain" and any
// glamour failure fall back to simple word wrapping.
func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
