package ui

import (
	"context"
	"io"
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/github"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

var testNow = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}

func quietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func strPtr(s string) *string { return &s }

func testIssue(id int64, number int, title string, state domain.State, labels ...string) domain.Issue {
	issue := domain.Issue{
		ID:        id,
		Number:    number,
		Title:     title,
		State:     state,
		HTMLURL:   "https://github.com/acme/board/issues/" + strconv.Itoa(number),
		CreatedAt: testNow.Add(-3 * time.Hour),
	}
	for _, l := range labels {
		issue.Labels = append(issue.Labels, domain.Label{Name: l})
	}
	return issue
}

// staticFetcher returns whatever issues/err currently hold.
type staticFetcher struct {
	mu     sync.Mutex
	issues []domain.Issue
	err    error
}

func (f *staticFetcher) set(issues []domain.Issue, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issues = issues
	f.err = err
}

func (f *staticFetcher) FetchAllIssues(context.Context) ([]domain.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issues, f.err
}

func newTestApp(t *testing.T, fetcher github.Fetcher) *App {
	t.Helper()
	app, err := NewApp(Config{
		Fetcher:         fetcher,
		Links:           github.NewLinks("", "acme", "board"),
		RefreshInterval: 2 * time.Minute,
		AutoRefresh:     true,
		OutputFormat:    "plain",
		Title:           "GAN Schedule",
		Subtitle:        "Fractal Visions AI Agent Task Management",
		Logger:          quietLogger(),
		Now:             func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app
}

// runCmd executes cmd and any batched children, returning every message
// produced. Tick commands are not used on these paths, so nothing sleeps.
func runCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// refreshResult pulls the refresh completion out of a command's messages.
func refreshResult(t *testing.T, cmd tea.Cmd) refreshCompleteMsg {
	t.Helper()
	for _, msg := range runCmd(t, cmd) {
		if done, ok := msg.(refreshCompleteMsg); ok {
			return done
		}
	}
	t.Fatal("command did not produce a refreshCompleteMsg")
	return refreshCompleteMsg{}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadBoard runs one full refresh cycle against the fetcher.
func loadBoard(t *testing.T, app *App) {
	t.Helper()
	app.Update(refreshResult(t, app.Init()))
}
