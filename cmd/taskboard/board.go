package main

import (
	"fmt"
	"io"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/debug"
	"taskboard/internal/refresh"
	"taskboard/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

type programRunner interface {
	Run() (tea.Model, error)
	Send(msg tea.Msg)
}

type programFactory func(*ui.App) programRunner

func runBoard(w io.Writer, s config.Settings) error {
	interval := refreshInterval(s)
	cfg := ui.Config{
		Fetcher:         newClient(s),
		Links:           newLinks(s),
		RefreshInterval: interval,
		AutoRefresh:     interval > 0,
		OutputFormat:    s.OutputFormat,
		Theme:           s.Theme,
		Title:           s.Title,
		Subtitle:        s.Subtitle,
		Version:         Version,
		Logger:          debug.Logger(),
	}

	started := time.Now()
	state, err := runProgram(cfg, interval, ui.NewApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen())
	})
	if err != nil {
		return err
	}
	printExitSummary(w, ExitSummary{
		Version:  Version,
		Repo:     newLinks(s).FullName(),
		State:    state,
		Duration: time.Since(started),
	})
	return nil
}

// runProgram builds the board, drives it with a refresh scheduler for the
// lifetime of the program and returns the final load state.
func runProgram(cfg ui.Config, interval time.Duration, builder func(ui.Config) (*ui.App, error), factory programFactory) (refresh.LoadState, error) {
	app, err := builder(cfg)
	if err != nil {
		return refresh.LoadState{}, fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return refresh.LoadState{}, fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return refresh.LoadState{}, fmt.Errorf("program is nil")
	}

	if interval > 0 {
		sched := refresh.NewScheduler(interval)
		sched.Start(func() { prog.Send(ui.TriggerRefreshMsg{}) })
		defer sched.Stop()
	}

	if _, err := prog.Run(); err != nil {
		return refresh.LoadState{}, fmt.Errorf("run UI: %w", err)
	}
	return app.State(), nil
}
