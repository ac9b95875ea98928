package ui

import (
	"fmt"

	"taskboard/internal/ui/theme"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles Bubble Tea messages.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateViewportSize()
		m.updateDetailContent()
		return m, nil

	case TriggerRefreshMsg:
		return m, m.startRefresh()

	case refreshCompleteMsg:
		m.applyRefresh(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case urlOpenedMsg:
		if msg.err != nil {
			m.logger.WithError(msg.err).WithField("url", msg.url).Warn("open browser failed")
			return m, m.showToast("Could not open browser")
		}
		return m, m.showToast("Opened " + msg.url)

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Escape):
		if m.showDetail {
			m.showDetail = false
			m.updateViewportSize()
		}
	case key.Matches(msg, m.keys.Refresh):
		return m.startRefresh()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-len(m.currentLane()))
	case key.Matches(msg, m.keys.End):
		m.moveCursor(len(m.currentLane()))
	case key.Matches(msg, m.keys.Left):
		m.moveColumn(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveColumn(1)
	case key.Matches(msg, m.keys.PageUp):
		if m.showDetail {
			_ = m.viewport.PageUp()
		}
	case key.Matches(msg, m.keys.PageDown):
		if m.showDetail {
			_ = m.viewport.PageDown()
		}
	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail
		m.updateViewportSize()
		m.updateDetailContent()
	case key.Matches(msg, m.keys.Open):
		if issue, ok := m.selectedIssue(); ok && issue.HTMLURL != "" {
			return openURLCmd(issue.HTMLURL)
		}
	case key.Matches(msg, m.keys.AddTask):
		return openURLCmd(m.links.NewIssue())
	case key.Matches(msg, m.keys.AllIssues):
		return openURLCmd(m.links.Issues())
	case key.Matches(msg, m.keys.Copy):
		return m.copySelectedURL()
	case key.Matches(msg, m.keys.Theme):
		return m.cycleTheme()
	}
	return nil
}

func (m *App) copySelectedURL() tea.Cmd {
	issue, ok := m.selectedIssue()
	if !ok || issue.HTMLURL == "" {
		return nil
	}
	if err := writeClipboardFn(issue.HTMLURL); err != nil {
		m.logger.WithError(err).Warn("clipboard write failed")
		return m.showToast("Clipboard unavailable")
	}
	return m.showToast(fmt.Sprintf("Copied #%d URL to clipboard", issue.Number))
}

func (m *App) cycleTheme() tea.Cmd {
	name := theme.Cycle()
	m.styles = newStyles(theme.Current())
	if err := saveThemeFn(name); err != nil {
		m.logger.WithError(err).Warn("save theme failed")
	}
	return m.showToast("Theme: " + name)
}
