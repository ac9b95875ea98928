package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultInterval is how often the board refetches.
const DefaultInterval = 2 * time.Minute

// Scheduler runs a job on a fixed interval until stopped. It does not skip a
// tick while a previous job is still running.
type Scheduler struct {
	interval time.Duration
	cron     *cron.Cron
	mu       sync.Mutex
	running  bool
	entryID  cron.EntryID
}

// NewScheduler returns a stopped scheduler. Non-positive intervals fall back
// to DefaultInterval.
func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		cron:     cron.New(),
	}
}

// Start schedules job every interval. Calling Start on a running scheduler
// is a no-op.
func (s *Scheduler) Start(job func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.entryID = s.cron.Schedule(cron.Every(s.interval), cron.FuncJob(job))
	s.cron.Start()
	s.running = true
}

// Stop cancels future ticks and waits for a job that is already running.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(s.entryID)
	s.running = false
}

// isRunning returns whether ticks are scheduled.
func (s *Scheduler) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// nextRun returns the next tick, or the zero time when stopped.
func (s *Scheduler) nextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// Run starts a scheduler for job, blocks until ctx is done and stops it.
// The stop happens on every return path.
func Run(ctx context.Context, interval time.Duration, job func()) {
	s := NewScheduler(interval)
	s.Start(job)
	defer s.Stop()
	<-ctx.Done()
}
