// Package web serves the task board as an HTML dashboard and a small JSON API.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/github"
	"taskboard/internal/refresh"
)

//go:embed templates/*.html
var templateFS embed.FS

// Column notices, shared with the terminal board.
const (
	noticeLoading = "Loading..."
	noticeFailed  = "Failed to load"
	noticeEmpty   = "No tasks"
)

// loadingPollInterval is how often a page rendered mid-refresh asks the API
// whether the refresh has settled.
const loadingPollInterval = 1500 * time.Millisecond

// BoardData is the view model of board.html.
type BoardData struct {
	Title          string
	Subtitle       string
	Repo           string
	RepoURL        string
	IssuesURL      string
	NewIssueURL    string
	Counters       []CounterView
	Columns        []ColumnView
	Loading        bool
	Error          string
	LastRefresh    string
	RefreshSeconds int
	PollMillis     int
}

// CounterView is one summary counter above the columns.
type CounterView struct {
	Category string
	Label    string
	Count    int
}

// ColumnView is one lane. Status is loading, failed, empty or items.
type ColumnView struct {
	Category string
	Title    string
	Icon     string
	Count    int
	Status   string
	Notice   string
	Cards    []CardView
}

// CardView is one issue card.
type CardView struct {
	Number  int
	Title   string
	Preview string
	Age     string
	URL     string
}

// Header holds the configurable page heading.
type Header struct {
	Title    string
	Subtitle string
}

// NewBoardData builds the page model for state at time now.
func NewBoardData(state refresh.LoadState, links github.Links, header Header, interval time.Duration, now time.Time) BoardData {
	counts := state.Board.Counts()
	byCategory := map[domain.Category]int{
		domain.CategoryTodo:       counts.Todo,
		domain.CategoryInProgress: counts.InProgress,
		domain.CategoryDone:       counts.Done,
	}

	data := BoardData{
		Title:          header.Title,
		Subtitle:       header.Subtitle,
		Repo:           links.FullName(),
		RepoURL:        links.Repository(),
		IssuesURL:      links.Issues(),
		NewIssueURL:    links.NewIssue(),
		Loading:        state.Loading,
		Error:          state.Err,
		RefreshSeconds: int(interval / time.Second),
		PollMillis:     int(loadingPollInterval / time.Millisecond),
	}
	if !state.LastRefresh.IsZero() {
		data.LastRefresh = domain.TimeAgo(state.LastRefresh, now)
	}

	for _, col := range domain.Columns {
		lane := state.Board.Lane(col.Category)
		data.Counters = append(data.Counters, CounterView{
			Category: string(col.Category),
			Label:    col.StatLabel,
			Count:    byCategory[col.Category],
		})

		status := state.ColumnStatus(col.Category)
		view := ColumnView{
			Category: string(col.Category),
			Title:    col.Title,
			Icon:     col.Icon,
			Count:    len(lane),
			Status:   status.String(),
		}
		switch status {
		case refresh.ColumnLoading:
			view.Notice = noticeLoading
		case refresh.ColumnFailed:
			view.Notice = noticeFailed
		case refresh.ColumnEmpty:
			view.Notice = noticeEmpty
		default:
			for _, issue := range lane {
				view.Cards = append(view.Cards, CardView{
					Number:  issue.Number,
					Title:   issue.Title,
					Preview: issue.BodyPreview(),
					Age:     domain.TimeAgo(issue.CreatedAt, now),
					URL:     issue.HTMLURL,
				})
			}
		}
		data.Columns = append(data.Columns, view)
	}
	return data
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	return template.New("").ParseFS(subFS, "*.html")
}
