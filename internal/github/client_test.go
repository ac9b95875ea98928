package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"taskboard/internal/domain"
	appErrors "taskboard/internal/errors"
)

// rewriteTransport redirects every request to a test server while keeping
// the original path and query.
type rewriteTransport struct {
	base      http.RoundTripper
	targetURL string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	target := t.targetURL + req.URL.Path
	if req.URL.RawQuery != "" {
		target += "?" + req.URL.RawQuery
	}
	newReq, err := http.NewRequestWithContext(req.Context(), req.Method, target, req.Body)
	if err != nil {
		return nil, err
	}
	newReq.Header = req.Header
	return t.base.RoundTrip(newReq)
}

const openIssuesJSON = `[
  {"id": 11, "number": 1, "title": "Fix bug", "body": "broken\nagain", "state": "open",
   "labels": [{"id": 5, "name": "bug", "color": "f00"}], "html_url": "https://github.com/o/r/issues/1",
   "created_at": "2026-01-02T03:04:05Z", "comments": 3, "user": {"login": "x"}},
  {"id": 12, "number": 2, "title": "Build thing", "body": null, "state": "open",
   "labels": [{"name": "in-progress"}], "html_url": "https://github.com/o/r/issues/2",
   "created_at": "2026-01-03T03:04:05Z"}
]`

const closedIssuesJSON = `[
  {"id": 13, "number": 3, "title": "Shipped", "state": "closed",
   "html_url": "https://github.com/o/r/issues/3", "created_at": "2026-01-01T00:00:00Z"}
]`

func newIssuesServer(t *testing.T, handler func(state string, w http.ResponseWriter)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/repo/issues" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		handler(r.URL.Query().Get("state"), w)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("owner", "repo")
	if c.Owner() != "owner" || c.Repo() != "repo" {
		t.Fatalf("owner/repo = %s/%s", c.Owner(), c.Repo())
	}
	if c.apiURL != DefaultAPIURL {
		t.Errorf("apiURL = %q, want %q", c.apiURL, DefaultAPIURL)
	}
	if c.openPerPage != 100 || c.closedPerPage != 50 {
		t.Errorf("page sizes = %d/%d, want 100/50", c.openPerPage, c.closedPerPage)
	}
	if c.httpClient == nil {
		t.Error("httpClient should not be nil")
	}
}

func TestNewClientWithOptions(t *testing.T) {
	custom := &http.Client{Timeout: time.Second}
	c := NewClient("owner", "repo", WithHTTPClient(custom), WithAPIURL("http://example.test/"), WithPageSizes(10, 0))
	if c.httpClient != custom {
		t.Error("custom HTTP client not applied")
	}
	if c.apiURL != "http://example.test" {
		t.Errorf("apiURL = %q", c.apiURL)
	}
	if c.openPerPage != 10 || c.closedPerPage != DefaultClosedPerPage {
		t.Errorf("page sizes = %d/%d", c.openPerPage, c.closedPerPage)
	}
}

func TestFetchAllIssuesQueries(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.URL.Query().Get("state")] = r.URL.Query().Get("per_page")
		mu.Unlock()
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("Accept = %q", got)
		}
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	c := NewClient("owner", "repo", WithAPIURL(server.URL))
	issues, err := c.FetchAllIssues(context.Background())
	if err != nil {
		t.Fatalf("FetchAllIssues() error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %d", len(issues))
	}
	if seen["open"] != "100" {
		t.Errorf("open per_page = %q, want 100", seen["open"])
	}
	if seen["closed"] != "50" {
		t.Errorf("closed per_page = %q, want 50", seen["closed"])
	}
}

func TestFetchAllIssuesMergesOpenFirst(t *testing.T) {
	server := newIssuesServer(t, func(state string, w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		switch state {
		case "open":
			_, _ = w.Write([]byte(openIssuesJSON))
		case "closed":
			_, _ = w.Write([]byte(closedIssuesJSON))
		}
	})

	c := NewClient("owner", "repo")
	c.httpClient = &http.Client{
		Transport: &rewriteTransport{base: http.DefaultTransport, targetURL: server.URL},
	}

	issues, err := c.FetchAllIssues(context.Background())
	if err != nil {
		t.Fatalf("FetchAllIssues() error: %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	for i, want := range []int64{11, 12, 13} {
		if issues[i].ID != want {
			t.Fatalf("issues[%d].ID = %d, want %d", i, issues[i].ID, want)
		}
	}
	first := issues[0]
	if first.BodyText() != "broken\nagain" {
		t.Errorf("body = %q", first.BodyText())
	}
	if len(first.Labels) != 1 || first.Labels[0].Name != "bug" {
		t.Errorf("labels = %+v", first.Labels)
	}
	if !first.CreatedAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("created_at = %v", first.CreatedAt)
	}
	if issues[1].Body != nil {
		t.Errorf("expected nil body for null, got %q", *issues[1].Body)
	}
	if issues[2].Labels != nil {
		t.Errorf("expected nil labels when omitted, got %+v", issues[2].Labels)
	}

	board := domain.Categorize(issues)
	if got := board.Counts(); got != (domain.Counts{Todo: 1, InProgress: 1, Done: 1}) {
		t.Fatalf("counts = %+v", got)
	}
}

func TestFetchAllIssuesFailsWhenEitherRequestFails(t *testing.T) {
	for _, failing := range []string{"open", "closed"} {
		t.Run(failing, func(t *testing.T) {
			server := newIssuesServer(t, func(state string, w http.ResponseWriter) {
				if state == failing {
					w.WriteHeader(http.StatusBadGateway)
					_, _ = w.Write([]byte(`{"message":"upstream"}`))
					return
				}
				_, _ = w.Write([]byte("[]"))
			})

			c := NewClient("owner", "repo", WithAPIURL(server.URL))
			issues, err := c.FetchAllIssues(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if issues != nil {
				t.Fatalf("expected nil issues, got %d", len(issues))
			}
			if err.Error() != appErrors.FetchFailureMessage {
				t.Fatalf("Error() = %q, want %q", err.Error(), appErrors.FetchFailureMessage)
			}
			if strings.Contains(err.Error(), "502") {
				t.Fatal("status must not be surfaced in the message")
			}
			if !appErrors.IsCode(err, appErrors.CodeFetchFailed) {
				t.Fatalf("code = %q", appErrors.CodeOf(err))
			}
		})
	}
}

func TestFetchAllIssuesBadJSON(t *testing.T) {
	server := newIssuesServer(t, func(state string, w http.ResponseWriter) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	})
	c := NewClient("owner", "repo", WithAPIURL(server.URL))
	_, err := c.FetchAllIssues(context.Background())
	if !appErrors.IsCode(err, appErrors.CodeFetchFailed) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
}

func TestFetchAllIssuesTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewClient("owner", "repo", WithAPIURL(url))
	_, err := c.FetchAllIssues(context.Background())
	if err == nil || err.Error() != appErrors.FetchFailureMessage {
		t.Fatalf("expected fetch failure, got %v", err)
	}
}

func TestFetchAllIssuesWaitsForBothRequests(t *testing.T) {
	var completed atomic.Int32
	release := make(chan struct{})
	server := newIssuesServer(t, func(state string, w http.ResponseWriter) {
		if state == "open" {
			w.WriteHeader(http.StatusInternalServerError)
			completed.Add(1)
			return
		}
		<-release
		_, _ = w.Write([]byte("[]"))
		completed.Add(1)
	})

	c := NewClient("owner", "repo", WithAPIURL(server.URL))
	done := make(chan error, 1)
	go func() {
		_, err := c.FetchAllIssues(context.Background())
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("fetch returned before the closed request settled")
	case <-time.After(100 * time.Millisecond):
	}
	close(release)

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected failure from open request")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("fetch did not finish")
	}
	if got := completed.Load(); got != 2 {
		t.Fatalf("expected both handlers to complete, got %d", got)
	}
}

func TestMockFetcher(t *testing.T) {
	m := NewMockFetcher()
	if _, err := m.FetchAllIssues(context.Background()); !errors.Is(err, ErrMockNotImplemented) {
		t.Fatalf("expected ErrMockNotImplemented, got %v", err)
	}
	m.FetchAllIssuesFn = func(context.Context) ([]domain.Issue, error) {
		return []domain.Issue{{ID: 1}}, nil
	}
	issues, err := m.FetchAllIssues(context.Background())
	if err != nil || len(issues) != 1 {
		t.Fatalf("FetchAllIssues() = %v, %v", issues, err)
	}
	if m.Calls() != 2 {
		t.Fatalf("Calls() = %d, want 2", m.Calls())
	}
}
