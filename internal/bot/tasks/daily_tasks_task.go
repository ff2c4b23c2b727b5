package tasks

import (
	"context"
	"fmt"
	"time"

	"earnbot/internal/telegram"
)

// newDailyTasksTask creates the job that pushes the current task list to
// every known user. One announcement is sent per (user, task) pair; a
// failed send for one pair never stops the rest.
func newDailyTasksTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "daily_tasks")

	return func(ctx context.Context) error {
		start := time.Now()

		tasks, err := deps.Store.ListTasks(ctx)
		if err != nil {
			return fmt.Errorf("daily task push: failed to list tasks: %w", err)
		}
		if len(tasks) == 0 {
			log.InfoContext(ctx, "No tasks to announce, skipping daily push")
			return nil
		}

		userIDs, err := deps.Store.ListUserIDs(ctx)
		if err != nil {
			return fmt.Errorf("daily task push: failed to list users: %w", err)
		}

		msgs := deps.Config.Messages
		report := telegram.PushTasks(ctx, deps.TG, log, userIDs, tasks, msgs.TaskAnnouncement, msgs.TaskButton)

		log.InfoContext(ctx, "Daily task push finished",
			"users", len(userIDs),
			"tasks", len(tasks),
			"sent", report.Sent,
			"failed", report.Failed,
			"duration", time.Since(start))
		return nil
	}
}
