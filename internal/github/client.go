package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"taskboard/internal/domain"
	appErrors "taskboard/internal/errors"

	"github.com/bytedance/sonic"
	"github.com/sourcegraph/conc"
)

// Default configuration values.
const (
	DefaultAPIURL        = "https://api.github.com"
	DefaultWebURL        = "https://github.com"
	DefaultOpenPerPage   = 100
	DefaultClosedPerPage = 50

	userAgent = "taskboard"
)

// Fetcher loads every issue the board shows.
type Fetcher interface {
	FetchAllIssues(ctx context.Context) ([]domain.Issue, error)
}

// Client reads issues of a single repository.
type Client struct {
	owner         string
	repo          string
	apiURL        string
	openPerPage   int
	closedPerPage int
	httpClient    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithAPIURL points the client at another API root (GitHub Enterprise, tests).
func WithAPIURL(apiURL string) ClientOption {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(apiURL), "/"); trimmed != "" {
			c.apiURL = trimmed
		}
	}
}

// WithPageSizes overrides the per_page values of the open and closed requests.
// Non-positive values keep the defaults.
func WithPageSizes(open, closed int) ClientOption {
	return func(c *Client) {
		if open > 0 {
			c.openPerPage = open
		}
		if closed > 0 {
			c.closedPerPage = closed
		}
	}
}

// NewClient creates a client for owner/repo. The default HTTP client has no
// timeout of its own; callers bound requests through the context.
func NewClient(owner, repo string, opts ...ClientOption) *Client {
	c := &Client{
		owner:         owner,
		repo:          repo,
		apiURL:        DefaultAPIURL,
		openPerPage:   DefaultOpenPerPage,
		closedPerPage: DefaultClosedPerPage,
		httpClient:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Owner returns the repository owner.
func (c *Client) Owner() string { return c.owner }

// Repo returns the repository name.
func (c *Client) Repo() string { return c.repo }

// FetchAllIssues requests open and closed issues concurrently and returns the
// open ones followed by the closed ones. Both requests always run to
// completion before the result is decided. Any failure is reported as a
// FetchFailure.
func (c *Client) FetchAllIssues(ctx context.Context) ([]domain.Issue, error) {
	var (
		wg                 conc.WaitGroup
		openIssues, closed []domain.Issue
		openErr, closedErr error
	)
	wg.Go(func() {
		openIssues, openErr = c.fetchIssues(ctx, domain.StateOpen, c.openPerPage)
	})
	wg.Go(func() {
		closed, closedErr = c.fetchIssues(ctx, domain.StateClosed, c.closedPerPage)
	})
	wg.Wait()

	if openErr != nil {
		return nil, appErrors.FetchFailure(openErr)
	}
	if closedErr != nil {
		return nil, appErrors.FetchFailure(closedErr)
	}

	all := make([]domain.Issue, 0, len(openIssues)+len(closed))
	all = append(all, openIssues...)
	all = append(all, closed...)
	return all, nil
}

// issuesURL builds the list endpoint for one state.
func (c *Client) issuesURL(state domain.State, perPage int) string {
	q := url.Values{}
	q.Set("state", string(state))
	q.Set("per_page", strconv.Itoa(perPage))
	return fmt.Sprintf("%s/repos/%s/%s/issues?%s",
		c.apiURL, url.PathEscape(c.owner), url.PathEscape(c.repo), q.Encode())
}

// fetchIssues fetches a single page of issues in the given state.
func (c *Client) fetchIssues(ctx context.Context, state domain.State, perPage int) ([]domain.Issue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.issuesURL(state, perPage), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s issues: %w", state, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("get %s issues: status %d", state, resp.StatusCode)
	}

	var issues []domain.Issue
	if err := sonic.ConfigStd.NewDecoder(resp.Body).Decode(&issues); err != nil {
		return nil, fmt.Errorf("decode %s issues: %w", state, err)
	}
	return issues, nil
}
