package ui

import (
	"time"

	"taskboard/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

// TriggerRefreshMsg asks the board to start a refresh. The periodic
// scheduler sends it into the running program.
type TriggerRefreshMsg struct{}

type refreshCompleteMsg struct {
	seq   uint64
	board domain.Board
	err   error
}

// urlOpenedMsg reports the outcome of handing a URL to the browser.
type urlOpenedMsg struct {
	url string
	err error
}

type toastExpiredMsg struct {
	id int
}

const toastDuration = 3 * time.Second

func scheduleToastExpiry(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
