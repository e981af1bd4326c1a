package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Pruner is anything holding entries that expire: the result cache and the
// session store.
type Pruner interface {
	Name() string
	Prune(now time.Time) int
}

// Scheduler periodically prunes expired cache entries and idle sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pruners   []Pruner
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, pruners ...Pruner) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		pruners:   pruners,
		interval:  interval,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.pruners) == 0 {
		slog.Info("scheduler: nothing to sweep")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = time.Minute
	}

	_, err := s.scheduler.Every(interval).WaitForSchedule().Do(s.Sweep)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Sweep runs every pruner once.
func (s *Scheduler) Sweep() {
	now := time.Now()
	for _, p := range s.pruners {
		if n := p.Prune(now); n > 0 {
			slog.Debug("scheduler: pruned expired entries", "target", p.Name(), "removed", n)
		}
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
