package main

import (
	"fmt"
	"io"
	"time"

	"taskboard/internal/refresh"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#7D56F4")
	dimColor     = lipgloss.Color("#6272A4")
	textColor    = lipgloss.Color("#F8F8F2")
	errorColor   = lipgloss.Color("#FF5555")
)

// ExitSummary is printed after the terminal board leaves the alt screen.
type ExitSummary struct {
	Version  string
	Repo     string
	State    refresh.LoadState
	Duration time.Duration
}

func printExitSummary(w io.Writer, summary ExitSummary) {
	appStyle := lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	dimStyle := lipgloss.NewStyle().Foreground(dimColor)
	statsStyle := lipgloss.NewStyle().Foreground(textColor)

	header := appStyle.Render("taskboard")
	if summary.Version != "" {
		header += dimStyle.Render(" " + summary.Version)
	}
	header += dimStyle.Render(fmt.Sprintf(" • %s • %s session", summary.Repo, formatDuration(summary.Duration)))

	c := summary.State.Board.Counts()
	stats := statsStyle.Render(fmt.Sprintf("Tasks: %d • %d To Do • %d In Progress • %d Completed",
		c.Total(), c.Todo, c.InProgress, c.Done))

	fmt.Fprintln(w, header)
	fmt.Fprintln(w, stats)
	if summary.State.Failed() {
		fmt.Fprintln(w, lipgloss.NewStyle().Foreground(errorColor).Render("Last refresh: "+summary.State.Err))
	}
}

// formatDuration renders a session length as 45s, 12m or 1h 5m.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
