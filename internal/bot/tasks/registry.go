package tasks

import (
	"context"

	"earnbot/internal/config"
)

// ScheduledTaskFunc is the signature shared by all scheduled jobs. The
// context provided by the scheduler should be respected for
// cancellation. A returned error is logged by the scheduler wrapper.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks initializes and returns the map of all scheduled
// jobs. The keys match the scheduler section of the configuration.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	jobs := map[string]ScheduledTaskFunc{
		config.DailyTasksJob: newDailyTasksTask(deps),
	}

	deps.Logger.Info("Initialized scheduled jobs", "count", len(jobs))
	return jobs
}
