package ui

import (
	"fmt"
	"strings"

	"taskboard/internal/domain"

	"github.com/charmbracelet/x/ansi"
)

const noDescription = "_No description provided._"

func (m *App) detailHeight() int {
	h := m.bodyHeight() / 2
	if h < minDetailHeight {
		h = minDetailHeight
	}
	return h
}

func (m *App) updateViewportSize() {
	w := m.width - 4
	if w < minColumnWidth {
		w = minColumnWidth
	}
	// Border plus the title line.
	h := m.detailHeight() - 3
	if h < 1 {
		h = 1
	}
	m.viewport.Width = w
	m.viewport.Height = h
}

// updateDetailContent renders the selected issue's body into the viewport.
func (m *App) updateDetailContent() {
	if !m.showDetail || !m.ready {
		return
	}
	issue, ok := m.selectedIssue()
	if !ok {
		m.viewport.SetContent("")
		return
	}
	body := strings.TrimSpace(issue.BodyText())
	if body == "" {
		body = noDescription
	}
	render := buildMarkdownRenderer(m.outputFormat, m.viewport.Width)

	var b strings.Builder
	b.WriteString(render(body))
	if names := issue.LabelNames(); len(names) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.styles.cardMeta.Render("Labels: " + strings.Join(names, ", ")))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.cardMeta.Render(issue.HTMLURL))
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func (m *App) renderDetail() string {
	issue, ok := m.selectedIssue()
	title := "No card selected"
	if ok {
		col, _ := domain.ColumnFor(domain.Classify(issue))
		title = fmt.Sprintf("#%d %s · %s · opened %s",
			issue.Number, issue.Title, col.Title, domain.TimeAgo(issue.CreatedAt, m.now()))
	}
	title = m.styles.detailTitle.Render(ansi.Truncate(title, m.viewport.Width, "…"))
	return m.styles.detail.Width(m.width - 2).Render(title + "\n" + m.viewport.View())
}
