package refresh

import (
	"context"
	"sync"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/github"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Load fetches and categorizes in one step.
func Load(ctx context.Context, fetcher github.Fetcher) (domain.Board, error) {
	issues, err := fetcher.FetchAllIssues(ctx)
	if err != nil {
		return domain.Board{}, err
	}
	return domain.Categorize(issues), nil
}

// Service owns a LoadState shared between concurrent readers and refreshes.
// A newer refresh never cancels an older in-flight one; the sequence guard in
// LoadState decides whose result sticks.
type Service struct {
	fetcher github.Fetcher
	logger  *log.Logger
	now     func() time.Time

	mu    sync.RWMutex
	state LoadState
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for refresh outcomes.
func WithLogger(logger *log.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used to stamp successful refreshes.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService returns a service in the Initial state.
func NewService(fetcher github.Fetcher, opts ...ServiceOption) *Service {
	s := &Service{
		fetcher: fetcher,
		logger:  log.StandardLogger(),
		now:     time.Now,
		state:   Initial(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state.
func (s *Service) Snapshot() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Refresh runs one cycle and returns the fetch error, if any. The error has
// already been folded into the state when Refresh returns.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	next, seq := s.state.Begin()
	s.state = next
	s.mu.Unlock()

	traceID := uuid.NewString()
	entry := s.logger.WithFields(log.Fields{"refresh": seq, "trace_id": traceID})
	entry.Debug("refresh started")

	start := s.now()
	board, err := Load(ctx, s.fetcher)

	s.mu.Lock()
	applied := seq == s.state.Seq
	s.state = s.state.Complete(seq, board, err, s.now())
	s.mu.Unlock()

	entry = entry.WithField("duration", s.now().Sub(start))
	switch {
	case !applied:
		entry.Debug("refresh superseded, result dropped")
	case err != nil:
		entry.WithError(err).Warn("refresh failed")
	default:
		c := board.Counts()
		entry.WithFields(log.Fields{
			"todo":       c.Todo,
			"inprogress": c.InProgress,
			"done":       c.Done,
		}).Info("refresh complete")
	}
	return err
}

// RunScheduled performs an immediate refresh, then one every interval until
// ctx is done. Ticks are counted from the call, not from the end of the first
// fetch. The scheduler is stopped before RunScheduled returns.
func (s *Service) RunScheduled(ctx context.Context, interval time.Duration) {
	sched := NewScheduler(interval)
	sched.Start(func() {
		_ = s.Refresh(ctx)
	})
	defer sched.Stop()

	_ = s.Refresh(ctx)
	<-ctx.Done()
}
