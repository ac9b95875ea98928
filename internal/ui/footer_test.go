package ui

import (
	"strings"
	"testing"
	"time"

	"taskboard/internal/github"
	"taskboard/internal/refresh"
	"taskboard/internal/ui/theme"
)

func footerApp(width int) *App {
	return &App{
		width:           width,
		links:           github.NewLinks("", "acme", "board"),
		styles:          newStyles(theme.Current()),
		state:           refresh.Initial(),
		now:             func() time.Time { return testNow },
		autoRefresh:     true,
		refreshInterval: 2 * time.Minute,
	}
}

func TestRenderFooter(t *testing.T) {
	m := footerApp(140)
	m.state.LastRefresh = testNow.Add(-5 * time.Minute)

	footer := stripANSI(m.renderFooter())
	for _, want := range []string{"↑↓", "Cards", "Quit", "Powered by GitHub Issues", "acme/board", "updated 5m ago", "every 2m0s"} {
		if !strings.Contains(footer, want) {
			t.Errorf("footer missing %q: %s", want, footer)
		}
	}
}

func TestRenderFooterTrimsHints(t *testing.T) {
	m := footerApp(70)
	footer := stripANSI(m.renderFooter())
	if strings.Contains(footer, "Quit") {
		t.Errorf("expected trailing hints dropped on narrow width: %s", footer)
	}
	if !strings.Contains(footer, "acme/board") {
		t.Errorf("repository must stay visible: %s", footer)
	}
}

func TestRenderFooterShowsToast(t *testing.T) {
	m := footerApp(120)
	m.autoRefresh = false
	m.toast = "Copied #3 URL to clipboard"

	footer := stripANSI(m.renderFooter())
	if !strings.Contains(footer, m.toast) {
		t.Errorf("expected toast in footer: %s", footer)
	}
	if strings.Contains(footer, "Cards") {
		t.Errorf("toast should replace hints: %s", footer)
	}
	if !strings.Contains(footer, "auto-refresh off") {
		t.Errorf("expected auto-refresh off notice: %s", footer)
	}
}
