package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskboard/internal/domain"
	appErrors "taskboard/internal/errors"
	"taskboard/internal/github"
	"taskboard/internal/refresh"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

var fixedNow = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

func quietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func sampleIssues() []domain.Issue {
	body := "Collect feedback\nfrom the agents"
	return []domain.Issue{
		{ID: 1, Number: 7, Title: "Draft roadmap", Body: &body, State: domain.StateOpen,
			HTMLURL: "https://github.com/acme/board/issues/7", CreatedAt: fixedNow.Add(-2 * time.Hour)},
		{ID: 2, Number: 8, Title: "Wire scheduler", State: domain.StateOpen,
			Labels:  []domain.Label{{Name: "in-progress"}},
			HTMLURL: "https://github.com/acme/board/issues/8", CreatedAt: fixedNow.Add(-90 * time.Second)},
	}
}

func newTestServer(t *testing.T, fetcher github.Fetcher) (*echo.Echo, *refresh.Service) {
	t.Helper()
	svc := refresh.NewService(fetcher,
		refresh.WithLogger(quietLogger()),
		refresh.WithClock(func() time.Time { return fixedNow }))
	e := echo.New()
	err := Register(e, svc, Options{
		Links:    github.NewLinks("", "acme", "board"),
		Header:   Header{Title: "GAN Schedule", Subtitle: "Fractal Visions AI Agent Task Management"},
		Interval: 2 * time.Minute,
		Now:      func() time.Time { return fixedNow },
	}, quietLogger())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return e, svc
}

func okFetcher(issues []domain.Issue) *github.MockFetcher {
	f := github.NewMockFetcher()
	f.FetchAllIssuesFn = func(context.Context) ([]domain.Issue, error) { return issues, nil }
	return f
}

func failingFetcher() *github.MockFetcher {
	f := github.NewMockFetcher()
	f.FetchAllIssuesFn = func(context.Context) ([]domain.Issue, error) {
		return nil, appErrors.FetchFailure(errors.New("HTTP 503"))
	}
	return f
}

func do(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBoard(t *testing.T, rec *httptest.ResponseRecorder) boardResponse {
	t.Helper()
	var resp boardResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
	}
	return resp
}

func TestHealthz(t *testing.T) {
	e, _ := newTestServer(t, okFetcher(nil))
	rec := do(e, http.MethodGet, "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response %d %q", rec.Code, rec.Body.String())
	}
}

func TestGetBoardBeforeFirstRefresh(t *testing.T) {
	e, _ := newTestServer(t, okFetcher(nil))
	rec := do(e, http.MethodGet, "/api/board")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBoard(t, rec)
	if !resp.Loading {
		t.Fatal("expected loading before first refresh")
	}
	if len(resp.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(resp.Columns))
	}
	for _, col := range resp.Columns {
		if col.Status != "loading" {
			t.Errorf("column %s status %q, want loading", col.Category, col.Status)
		}
		if col.Issues == nil {
			t.Errorf("column %s issues should encode as []", col.Category)
		}
	}
	if resp.LastRefresh != nil {
		t.Fatal("expected no lastRefresh before first success")
	}
}

func TestPostRefreshSuccess(t *testing.T) {
	fetcher := okFetcher(sampleIssues())
	e, _ := newTestServer(t, fetcher)

	rec := do(e, http.MethodPost, "/api/refresh")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBoard(t, rec)
	if resp.Loading || resp.Error != "" {
		t.Fatalf("unexpected state loading=%v error=%q", resp.Loading, resp.Error)
	}
	if resp.Counts.Todo != 1 || resp.Counts.InProgress != 1 || resp.Counts.Done != 0 || resp.Counts.Total != 2 {
		t.Fatalf("unexpected counts %+v", resp.Counts)
	}
	wantStatus := map[domain.Category]string{
		domain.CategoryTodo:       "items",
		domain.CategoryInProgress: "items",
		domain.CategoryDone:       "empty",
	}
	for _, col := range resp.Columns {
		if col.Status != wantStatus[col.Category] {
			t.Errorf("column %s status %q, want %q", col.Category, col.Status, wantStatus[col.Category])
		}
	}
	if resp.Columns[0].Issues[0].Number != 7 {
		t.Fatalf("expected issue #7 in To Do, got %+v", resp.Columns[0].Issues)
	}
	if resp.LastRefresh == nil || !resp.LastRefresh.Equal(fixedNow) {
		t.Fatalf("expected lastRefresh %v, got %v", fixedNow, resp.LastRefresh)
	}
	if resp.Links.NewIssue != "https://github.com/acme/board/issues/new?labels=todo&title=New+Task" {
		t.Fatalf("unexpected new issue link %q", resp.Links.NewIssue)
	}
	if fetcher.Calls() != 1 {
		t.Fatalf("expected one fetch, got %d", fetcher.Calls())
	}
}

func TestPostRefreshFailure(t *testing.T) {
	e, _ := newTestServer(t, failingFetcher())

	rec := do(e, http.MethodPost, "/api/refresh")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	resp := decodeBoard(t, rec)
	if resp.Error != appErrors.FetchFailureMessage {
		t.Fatalf("expected %q, got %q", appErrors.FetchFailureMessage, resp.Error)
	}
	for _, col := range resp.Columns {
		if col.Status != "failed" {
			t.Errorf("column %s status %q, want failed", col.Category, col.Status)
		}
	}
}

func TestBoardPage(t *testing.T) {
	e, svc := newTestServer(t, okFetcher(sampleIssues()))
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	rec := do(e, http.MethodGet, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	page := rec.Body.String()
	for _, want := range []string{
		"<title>GAN Schedule</title>",
		"Fractal Visions AI Agent Task Management",
		"📋 To Do (1)", "⚡ In Progress (1)", "✅ Done (0)",
		"Completed",
		"+ Add Task", "labels=todo",
		"Draft roadmap", "Collect feedback from the agents",
		"#7", "2h ago", "just now",
		"No tasks",
		"stopPropagation",
		"Powered by", "acme/board", "updated just now",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestBoardPageFailure(t *testing.T) {
	e, svc := newTestServer(t, failingFetcher())
	_ = svc.Refresh(context.Background())

	page := do(e, http.MethodGet, "/").Body.String()
	if got := strings.Count(page, ">"+noticeFailed+"<"); got != 3 {
		t.Fatalf("expected %q in all three columns, got %d", noticeFailed, got)
	}
	if !strings.Contains(page, appErrors.FetchFailureMessage) {
		t.Fatal("expected fetch failure banner")
	}
}

func TestBoardPagePollsWhileLoading(t *testing.T) {
	e, _ := newTestServer(t, okFetcher(sampleIssues()))

	page := do(e, http.MethodGet, "/").Body.String()
	if got := strings.Count(page, ">"+noticeLoading+"<"); got != 3 {
		t.Fatalf("expected %q in all three columns, got %d", noticeLoading, got)
	}
	for _, want := range []string{"fetch('/api/board')", "board.loading", "location.reload()", "1500"} {
		if !strings.Contains(page, want) {
			t.Errorf("loading page missing %q", want)
		}
	}
}

func TestBoardPageStopsPollingOnceSettled(t *testing.T) {
	for _, tc := range []struct {
		name    string
		fetcher github.Fetcher
	}{
		{"success", okFetcher(sampleIssues())},
		{"failure", failingFetcher()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e, svc := newTestServer(t, tc.fetcher)
			_ = svc.Refresh(context.Background())

			page := do(e, http.MethodGet, "/").Body.String()
			if strings.Contains(page, "fetch('/api/board')") {
				t.Fatal("settled page should not poll the board API")
			}
			if strings.Contains(page, ">"+noticeLoading+"<") {
				t.Fatal("settled page should not show the loading notice")
			}
		})
	}
}

func TestBoardPagePollsWithoutAutoRefresh(t *testing.T) {
	data := NewBoardData(refresh.Initial(), github.NewLinks("", "o", "r"), Header{Title: "T"}, 0, fixedNow)
	if data.PollMillis <= 0 {
		t.Fatalf("expected a loading poll independent of auto refresh, got %d", data.PollMillis)
	}
}

func TestNewBoardDataLoading(t *testing.T) {
	data := NewBoardData(refresh.Initial(), github.NewLinks("", "o", "r"), Header{Title: "T"}, 0, fixedNow)
	if !data.Loading || data.LastRefresh != "" || data.RefreshSeconds != 0 {
		t.Fatalf("unexpected data %+v", data)
	}
	for _, col := range data.Columns {
		if col.Notice != noticeLoading || len(col.Cards) != 0 {
			t.Errorf("column %s: notice %q cards %d", col.Category, col.Notice, len(col.Cards))
		}
	}
	if len(data.Counters) != 3 || data.Counters[2].Label != "Completed" {
		t.Fatalf("unexpected counters %+v", data.Counters)
	}
}
