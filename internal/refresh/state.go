// Package refresh drives the fetch-categorize cycle: a pure load-state
// reducer, a cancellable periodic scheduler and a goroutine-safe service that
// ties both to a github.Fetcher.
package refresh

import (
	"time"

	"taskboard/internal/domain"
	appErrors "taskboard/internal/errors"
)

// LoadState is the board plus the loading and error flags around it. Values
// are immutable in practice: every transition returns a new LoadState.
type LoadState struct {
	Loading bool
	// Err is the display message of the last failed refresh, "" otherwise.
	Err string
	// Board is the result of the last successful refresh. A failed refresh
	// never replaces it.
	Board domain.Board
	// Seq is the number of the most recently issued refresh.
	Seq uint64
	// LastRefresh is when Board was last replaced.
	LastRefresh time.Time
}

// Initial is the state before the first fetch completes.
func Initial() LoadState {
	return LoadState{Loading: true, Board: domain.NewBoard()}
}

// Begin starts a refresh: loading is set, the error cleared and a new
// sequence number issued. The number must be handed back to Succeed or Fail.
func (s LoadState) Begin() (LoadState, uint64) {
	s.Seq++
	s.Loading = true
	s.Err = ""
	return s, s.Seq
}

// Succeed installs board if seq is the most recently issued refresh.
// Completions of superseded refreshes are dropped.
func (s LoadState) Succeed(seq uint64, board domain.Board, at time.Time) LoadState {
	if seq != s.Seq {
		return s
	}
	s.Board = board
	s.Err = ""
	s.Loading = false
	s.LastRefresh = at
	return s
}

// Fail records err for the refresh seq, leaving the board untouched.
func (s LoadState) Fail(seq uint64, err error) LoadState {
	if seq != s.Seq {
		return s
	}
	s.Err = appErrors.DisplayMessage(err)
	if s.Err == "" {
		s.Err = appErrors.FetchFailureMessage
	}
	s.Loading = false
	return s
}

// Complete applies the outcome of refresh seq.
func (s LoadState) Complete(seq uint64, board domain.Board, err error, at time.Time) LoadState {
	if err != nil {
		return s.Fail(seq, err)
	}
	return s.Succeed(seq, board, at)
}

// Failed reports whether the last applied refresh failed.
func (s LoadState) Failed() bool {
	return s.Err != ""
}

// ColumnStatus is what a lane shows instead of (or as) its cards.
type ColumnStatus int

const (
	ColumnLoading ColumnStatus = iota
	ColumnFailed
	ColumnEmpty
	ColumnItems
)

// String returns the status name.
func (c ColumnStatus) String() string {
	switch c {
	case ColumnLoading:
		return "loading"
	case ColumnFailed:
		return "failed"
	case ColumnEmpty:
		return "empty"
	default:
		return "items"
	}
}

// ColumnStatus decides what lane c renders. Loading wins over a failure and a
// failure hides stale cards.
func (s LoadState) ColumnStatus(c domain.Category) ColumnStatus {
	switch {
	case s.Loading:
		return ColumnLoading
	case s.Failed():
		return ColumnFailed
	case len(s.Board.Lane(c)) == 0:
		return ColumnEmpty
	default:
		return ColumnItems
	}
}
