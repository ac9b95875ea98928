package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// helpSection is a titled group of keybindings.
type helpSection struct {
	title string
	rows  [][]string // [keys, description]
}

// getHelpSections lays out the help content. Text comes from the bindings
// so the overlay cannot drift from the key map.
func getHelpSections(keys KeyMap) []helpSection {
	return []helpSection{
		{
			title: "NAVIGATION",
			rows: [][]string{
				{keys.Up.Help().Key, keys.Up.Help().Desc},
				{keys.Left.Help().Key, keys.Left.Help().Desc},
				{keys.Home.Help().Key, keys.Home.Help().Desc},
				{keys.End.Help().Key, keys.End.Help().Desc},
				{keys.PageUp.Help().Key, keys.PageUp.Help().Desc},
				{keys.PageDown.Help().Key, keys.PageDown.Help().Desc},
			},
		},
		{
			title: "CARDS",
			rows: [][]string{
				{keys.Open.Help().Key, keys.Open.Help().Desc},
				{keys.Copy.Help().Key, keys.Copy.Help().Desc},
				{keys.Detail.Help().Key, keys.Detail.Help().Desc},
			},
		},
		{
			title: "BOARD",
			rows: [][]string{
				{keys.AddTask.Help().Key, keys.AddTask.Help().Desc},
				{keys.AllIssues.Help().Key, keys.AllIssues.Help().Desc},
				{keys.Refresh.Help().Key, keys.Refresh.Help().Desc},
				{keys.Theme.Help().Key, keys.Theme.Help().Desc},
				{keys.Help.Help().Key, keys.Help.Help().Desc},
				{keys.Quit.Help().Key, keys.Quit.Help().Desc},
			},
		},
	}
}

// renderHelpOverlay renders the centered help modal.
func (m *App) renderHelpOverlay() string {
	sections := getHelpSections(m.keys)

	left := m.renderHelpSectionTable(sections[0])
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHelpSectionTable(sections[1]),
		"",
		m.renderHelpSectionTable(sections[2]),
	)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)

	dividerWidth := lipgloss.Width(columns)
	if dividerWidth < 40 {
		dividerWidth = 40
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.helpTitle.Render("✦ "+strings.ToUpper(m.title)+" HELP ✦"),
		m.styles.helpDivider.Render(strings.Repeat("─", dividerWidth)),
		"",
		columns,
		"",
		m.styles.footerMuted.Render("Press ? or Esc to close"),
	)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		m.styles.helpOverlay.Render(content),
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m *App) renderHelpSectionTable(section helpSection) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return m.styles.helpKey.Width(14)
			}
			return m.styles.helpDesc
		}).
		Rows(section.rows...)

	header := m.styles.helpSectionHeader.Render(section.title)
	// The hidden border adds an empty top row.
	body := strings.TrimPrefix(t.String(), "\n")
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}
