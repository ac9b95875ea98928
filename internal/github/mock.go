package github

import (
	"context"
	"errors"
	"sync"

	"taskboard/internal/domain"
)

// ErrMockNotImplemented is returned when a MockFetcher lacks an override.
var ErrMockNotImplemented = errors.New("github.MockFetcher: method not implemented")

// MockFetcher is a test double for Fetcher.
type MockFetcher struct {
	FetchAllIssuesFn func(context.Context) ([]domain.Issue, error)

	mu                  sync.Mutex
	FetchAllIssuesCalls int
}

// NewMockFetcher returns a MockFetcher with no overrides.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

// FetchAllIssues records the call and delegates to FetchAllIssuesFn.
func (m *MockFetcher) FetchAllIssues(ctx context.Context) ([]domain.Issue, error) {
	m.mu.Lock()
	m.FetchAllIssuesCalls++
	fn := m.FetchAllIssuesFn
	m.mu.Unlock()
	if fn == nil {
		return nil, ErrMockNotImplemented
	}
	return fn(ctx)
}

// Calls returns how many times FetchAllIssues ran.
func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FetchAllIssuesCalls
}
