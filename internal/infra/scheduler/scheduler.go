// Package scheduler runs the periodic report and goal jobs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrJobRunning is returned when a job is triggered while its previous run is still in progress.
var ErrJobRunning = errors.New("job already running")

// Job is one periodic task. Spec uses the standard five-field cron format.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler owns a cron runner and the jobs registered on it.
type Scheduler struct {
	cron   *cron.Cron
	jobs   []Job
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	started bool
	running map[string]bool
}

// New creates a Scheduler firing in loc. Nothing runs until Start.
func New(loc *time.Location, jobs ...Job) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		jobs:    jobs,
		logger:  slog.With("component", "scheduler"),
		ctx:     ctx,
		cancel:  cancel,
		running: map[string]bool{},
	}
}

// Start registers every job and starts the runner. An invalid spec fails the whole start.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("scheduler already started")
	}
	for _, job := range s.jobs {
		job := job
		if _, err := s.cron.AddFunc(job.Spec, func() { s.run(job) }); err != nil {
			return fmt.Errorf("invalid cron spec %q for job %s: %w", job.Spec, job.Name, err)
		}
		s.logger.Info("job scheduled", "job", job.Name, "spec", job.Spec)
	}
	s.cron.Start()
	s.started = true
	return nil
}

// Stop cancels running jobs and waits for them to return, or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	started := s.started
	s.started = false
	s.mu.Unlock()

	s.cancel()
	if !started {
		return nil
	}

	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// RunNow executes the named job synchronously.
func (s *Scheduler) RunNow(name string) error {
	for _, job := range s.jobs {
		if job.Name == name {
			return s.run(job)
		}
	}
	return fmt.Errorf("unknown job %q", name)
}

// run executes job unless a previous run of it is still in progress. Cron ticks and
// RunNow share the same guard.
func (s *Scheduler) run(job Job) error {
	if !s.claim(job.Name) {
		s.logger.Warn("job skipped, previous run still in progress", "job", job.Name)
		return ErrJobRunning
	}
	defer s.release(job.Name)

	start := time.Now()
	s.logger.Info("job started", "job", job.Name)

	err := job.Run(s.ctx)
	if err != nil {
		s.logger.Error("job failed", "job", job.Name, "duration", time.Since(start), "error", err)
		return err
	}
	s.logger.Info("job finished", "job", job.Name, "duration", time.Since(start))
	return nil
}

func (s *Scheduler) claim(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running[name] {
		return false
	}
	s.running[name] = true
	return true
}

func (s *Scheduler) release(name string) {
	s.mu.Lock()
	delete(s.running, name)
	s.mu.Unlock()
}
