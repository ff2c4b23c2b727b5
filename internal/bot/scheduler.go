package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"earnbot/internal/bot/tasks"
	"earnbot/internal/config"
)

// Scheduler manages recurring jobs using the gocron library. Jobs run on
// a fixed interval with an optional absolute first-fire time; the
// schedule is held in memory only, so a restart resets it.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	cfg       config.SchedulerConfig
	jobMap    map[string]tasks.ScheduledTaskFunc
	mu        sync.Mutex
	running   bool
}

// NewScheduler creates a scheduler instance over the registered jobs.
func NewScheduler(logger *slog.Logger, cfg config.SchedulerConfig, jobMap map[string]tasks.ScheduledTaskFunc) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "scheduler")

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    log,
		cfg:       cfg,
		jobMap:    jobMap,
	}, nil
}

// Start schedules all enabled jobs and starts the scheduler's ticking.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	scheduled := 0
	for name, jobCfg := range s.cfg.Jobs {
		if !jobCfg.Enabled {
			s.logger.Info("Skipping disabled job", "job", name)
			continue
		}

		jobFunc, exists := s.jobMap[name]
		if !exists {
			s.logger.Warn("Job configured but not registered, skipping", "job", name)
			continue
		}

		interval := jobCfg.Interval
		if interval <= 0 {
			interval = 24 * time.Hour
		}

		opts := []gocron.JobOption{gocron.WithName(name)}
		if startAt, ok := jobCfg.StartTime(); ok && startAt.After(time.Now()) {
			opts = append(opts, gocron.WithStartAt(gocron.WithStartDateTime(startAt)))
		}

		_, err := s.scheduler.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(s.wrap(name, jobFunc), context.Background()),
			opts...,
		)
		if err != nil {
			s.logger.Error("Failed to schedule job", "job", name, "interval", interval, "error", err)
			continue
		}

		s.logger.Info("Scheduled job", "job", name, "interval", interval, "start_at", jobCfg.StartAt)
		scheduled++
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler started", "jobs_scheduled", scheduled)
	return nil
}

// wrap adds start/finish logging and duration measurement around a job.
func (s *Scheduler) wrap(name string, jobFunc tasks.ScheduledTaskFunc) func(ctx context.Context) {
	return func(ctx context.Context) {
		s.logger.Info("Running scheduled job", "job", name)
		start := time.Now()
		if err := jobFunc(ctx); err != nil {
			s.logger.Error("Scheduled job failed", "job", name, "error", err)
		}
		s.logger.Info("Finished scheduled job", "job", name, "duration", time.Since(start))
	}
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	err := s.scheduler.Shutdown()
	if err != nil {
		s.logger.Error("Error during scheduler shutdown", "error", err)
	}

	s.running = false
	return err
}
