package ui

import (
	"context"
	"time"

	"taskboard/internal/github"
	"taskboard/internal/refresh"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

// refreshTimeout bounds one fetch from the terminal board.
const refreshTimeout = 30 * time.Second

func fetchBoardCmd(fetcher github.Fetcher, seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		board, err := refresh.Load(ctx, fetcher)
		return refreshCompleteMsg{seq: seq, board: board, err: err}
	}
}

// startRefresh issues a new refresh. Earlier refreshes still in flight are
// not cancelled; their results are dropped when they arrive.
func (m *App) startRefresh() tea.Cmd {
	state, seq := m.state.Begin()
	m.state = state
	m.logger.WithField("refresh", seq).Debug("refresh started")
	return tea.Batch(m.spinner.Tick, fetchBoardCmd(m.fetcher, seq))
}

func (m *App) applyRefresh(msg refreshCompleteMsg) {
	entry := m.logger.WithField("refresh", msg.seq)
	if msg.seq != m.state.Seq {
		entry.Debug("refresh superseded, result dropped")
		return
	}

	selected, hadSelection := m.cursorIssue()
	m.state = m.state.Complete(msg.seq, msg.board, msg.err, m.now())
	if msg.err != nil {
		entry.WithError(msg.err).Warn("refresh failed")
	} else {
		counts := msg.board.Counts()
		entry.WithFields(log.Fields{
			"todo":       counts.Todo,
			"inprogress": counts.InProgress,
			"done":       counts.Done,
		}).Info("refresh complete")
	}

	if hadSelection {
		m.restoreSelection(selected.ID)
	}
	m.clampCursors()
	m.updateDetailContent()
}
