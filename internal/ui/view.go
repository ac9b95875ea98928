package ui

import (
	"fmt"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/refresh"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
)

const (
	headerHeight = 5
	footerHeight = 1
	// cardBodyLines caps the wrapped body preview on a card.
	cardBodyLines = 2
)

// Column notices mirror the web board.
const (
	noticeLoading = "Loading..."
	noticeFailed  = "Failed to load"
	noticeEmpty   = "No tasks"
)

// View renders the board.
func (m *App) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	body := m.bodyHeight()
	columnsHeight := body
	var detail string
	if m.showDetail {
		detail = m.renderDetail()
		columnsHeight = body - lipgloss.Height(detail)
	}

	parts := []string{m.renderHeader(), m.renderColumns(columnsHeight)}
	if detail != "" {
		parts = append(parts, detail)
	}
	parts = append(parts, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *App) bodyHeight() int {
	h := m.height - headerHeight - footerHeight
	if h < 3 {
		h = 3
	}
	return h
}

func (m *App) renderHeader() string {
	title := m.styles.header.Render(m.title)
	if m.version != "" {
		title += " " + m.styles.version.Render(m.version)
	}
	lines := []string{
		title,
		m.styles.subtitle.Render(m.subtitle),
		m.renderStats(),
		m.renderActions(),
		"",
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderStats() string {
	counts := m.state.Board.Counts()
	values := map[domain.Category]int{
		domain.CategoryTodo:       counts.Todo,
		domain.CategoryInProgress: counts.InProgress,
		domain.CategoryDone:       counts.Done,
	}
	var parts []string
	for _, col := range domain.Columns {
		parts = append(parts, m.styles.statCount.Render(fmt.Sprintf("%d", values[col.Category]))+" "+
			m.styles.statLabel.Render(col.StatLabel))
	}
	line := strings.Join(parts, "   ")

	switch {
	case m.state.Loading:
		line += "   " + m.spinner.View() + " " + m.styles.notice.Render("Refreshing")
	case m.state.Failed():
		line += "   " + m.styles.errorText.Render("⚠ "+m.state.Err)
	}
	return line
}

func (m *App) renderActions() string {
	action := func(k, label string) string {
		return m.styles.actionKey.Render("["+k+"]") + " " + m.styles.action.Render(label)
	}
	return strings.Join([]string{
		action("a", "+ Add Task"),
		action("i", "All Issues"),
		action("r", "Refresh"),
	}, "   ")
}

func (m *App) columnWidths() []int {
	n := len(domain.Columns)
	base := m.width / n
	if base < minColumnWidth {
		base = minColumnWidth
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
	}
	if extra := m.width - base*n; extra > 0 {
		widths[n-1] += extra
	}
	return widths
}

func (m *App) renderColumns(height int) string {
	widths := m.columnWidths()
	cols := make([]string, 0, len(domain.Columns))
	for i, meta := range domain.Columns {
		cols = append(cols, m.renderColumn(i, meta, widths[i], height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m *App) renderColumn(idx int, meta domain.Column, width, height int) string {
	style := m.styles.column
	if idx == m.column {
		style = m.styles.columnFocused
	}
	inner := width - 4
	if inner < 1 {
		inner = 1
	}
	contentHeight := height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}

	lane := m.state.Board.Lane(meta.Category)
	header := m.styles.columnTitle[meta.Category].Render(
		ansi.Truncate(fmt.Sprintf("%s %s (%d)", meta.Icon, meta.Title, len(lane)), inner, "…"))
	lines := []string{header, ""}

	switch m.state.ColumnStatus(meta.Category) {
	case refresh.ColumnLoading:
		lines = append(lines, m.styles.notice.Render(noticeLoading))
	case refresh.ColumnFailed:
		lines = append(lines, m.styles.noticeError.Render(noticeFailed))
	case refresh.ColumnEmpty:
		lines = append(lines, m.styles.notice.Render(noticeEmpty))
	default:
		lines = append(lines, m.renderCards(idx, lane, inner, contentHeight-len(lines))...)
	}

	if len(lines) > contentHeight {
		lines = lines[:contentHeight]
	}
	return style.Width(width - 2).Height(contentHeight).Render(strings.Join(lines, "\n"))
}

// renderCards renders the visible window of a lane, scrolling so the cursor
// card stays on screen.
func (m *App) renderCards(idx int, lane []domain.Issue, width, avail int) []string {
	cards := make([][]string, len(lane))
	for i, issue := range lane {
		selected := idx == m.column && i == m.cursors[idx]
		cards[i] = m.renderCard(issue, width, selected)
	}

	cursor := m.cursors[idx]
	if m.offsets[idx] > cursor {
		m.offsets[idx] = cursor
	}
	for m.offsets[idx] < cursor && cardsHeight(cards[m.offsets[idx]:cursor+1]) > avail {
		m.offsets[idx]++
	}

	var out []string
	for _, card := range cards[m.offsets[idx]:] {
		if len(out)+len(card) > avail && len(out) > 0 {
			break
		}
		out = append(out, card...)
	}
	return out
}

func cardsHeight(cards [][]string) int {
	total := 0
	for _, c := range cards {
		total += len(c)
	}
	return total
}

// renderCard returns the card lines: title, a short body preview, the issue
// number with its age, and a blank separator.
func (m *App) renderCard(issue domain.Issue, width int, selected bool) []string {
	lines := []string{m.styles.cardTitle.Render(ansi.Truncate(issue.Title, width, "…"))}

	if preview := issue.BodyPreview(); preview != "" {
		wrapped := strings.Split(wordwrap.String(preview, width), "\n")
		if len(wrapped) > cardBodyLines {
			wrapped = wrapped[:cardBodyLines]
		}
		for _, l := range wrapped {
			lines = append(lines, m.styles.cardBody.Render(ansi.Truncate(l, width, "…")))
		}
	}

	meta := m.styles.cardNumber.Render(fmt.Sprintf("#%d", issue.Number)) +
		m.styles.cardMeta.Render(" · "+domain.TimeAgo(issue.CreatedAt, m.now()))
	lines = append(lines, meta)

	if selected {
		for i, l := range lines {
			lines[i] = m.styles.cardSelected.Width(width).Render(l)
		}
	}
	return append(lines, "")
}
