package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a bot user. A user is created on the first /start
// command and never deleted; only the balance is ever mutated.
type User struct {
	UserID     int64           `db:"user_id"`
	Balance    decimal.Decimal `db:"balance"`
	ReferredBy *int64          `db:"referred_by"`
	CreatedAt  time.Time       `db:"created_at"`
}

// Task is an advertised action (visiting a URL) with a monetary reward.
// Tasks are created by administrators and are immutable thereafter.
type Task struct {
	ID        int64           `db:"id"`
	Title     string          `db:"title"`
	URL       string          `db:"url"`
	Reward    decimal.Decimal `db:"reward"`
	CreatedAt time.Time       `db:"created_at"`
}

// Completion records that a user has claimed a task's reward. At most
// one completion exists per (user, task) pair.
type Completion struct {
	UserID      int64     `db:"user_id"`
	TaskID      int64     `db:"task_id"`
	CompletedAt time.Time `db:"completed_at"`
}

// AnalyticsEntry is an append-only log line recording a user action.
type AnalyticsEntry struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	Action     string    `db:"action"`
	RecordedAt time.Time `db:"recorded_at"`
}
