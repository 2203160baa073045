package scheduler

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler refreshes a gauge-style job on a fixed interval. The first run
// happens synchronously in Start so exported values are populated before
// the first scrape.
type Scheduler struct {
	name     string
	interval time.Duration
	job      func()
	logger   *zap.Logger

	mu   sync.Mutex
	done chan struct{}
	wg   sync.WaitGroup
}

// New creates a scheduler; the job does not run until Start
func New(name string, interval time.Duration, job func(), logger *zap.Logger) *Scheduler {
	return &Scheduler{
		name:     name,
		interval: interval,
		job:      job,
		logger:   logger,
	}
}

// Start runs the job once and then every interval. Calling Start on a
// running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != nil {
		return
	}

	s.run()

	done := make(chan struct{})
	s.done = done
	s.wg.Add(1)
	go s.loop(done)
}

func (s *Scheduler) loop(done <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.run()
		case <-done:
			return
		}
	}
}

// run executes the job once; a panicking job is logged and the schedule continues
func (s *Scheduler) run() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Scheduled job panicked", zap.String("job", s.name), zap.Any("panic", r))
		}
	}()
	s.job()
}

// Stop halts the scheduler and waits for an in-flight job to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done == nil {
		return
	}

	close(s.done)
	s.wg.Wait()
	s.done = nil
}

// IsRunning reports whether the scheduler has been started and not stopped
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done != nil
}
