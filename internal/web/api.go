package web

import (
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/github"
	"taskboard/internal/refresh"
)

type boardResponse struct {
	Loading     bool             `json:"loading"`
	Error       string           `json:"error,omitempty"`
	Seq         uint64           `json:"seq"`
	LastRefresh *time.Time       `json:"lastRefresh,omitempty"`
	Counts      countsResponse   `json:"counts"`
	Columns     []columnResponse `json:"columns"`
	Links       linksResponse    `json:"links"`
}

type countsResponse struct {
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
	Total      int `json:"total"`
}

type columnResponse struct {
	Category  domain.Category `json:"category"`
	Title     string          `json:"title"`
	StatLabel string          `json:"statLabel"`
	Status    string          `json:"status"`
	Issues    []domain.Issue  `json:"issues"`
}

type linksResponse struct {
	Repository string `json:"repository"`
	Issues     string `json:"issues"`
	NewIssue   string `json:"newIssue"`
}

func newBoardResponse(state refresh.LoadState, links github.Links) boardResponse {
	counts := state.Board.Counts()
	resp := boardResponse{
		Loading: state.Loading,
		Error:   state.Err,
		Seq:     state.Seq,
		Counts: countsResponse{
			Todo:       counts.Todo,
			InProgress: counts.InProgress,
			Done:       counts.Done,
			Total:      counts.Total(),
		},
		Links: linksResponse{
			Repository: links.Repository(),
			Issues:     links.Issues(),
			NewIssue:   links.NewIssue(),
		},
	}
	if !state.LastRefresh.IsZero() {
		at := state.LastRefresh
		resp.LastRefresh = &at
	}
	for _, col := range domain.Columns {
		issues := state.Board.Lane(col.Category)
		if issues == nil {
			issues = []domain.Issue{}
		}
		resp.Columns = append(resp.Columns, columnResponse{
			Category:  col.Category,
			Title:     col.Title,
			StatLabel: col.StatLabel,
			Status:    state.ColumnStatus(col.Category).String(),
			Issues:    issues,
		})
	}
	return resp
}
