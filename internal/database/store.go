package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ErrInvalidReward is returned by InsertTask when the reward is not a
// positive amount.
var ErrInvalidReward = errors.New("task reward must be positive")

// defaultAnalyticsLimit is how many analytics entries are returned when
// the caller does not specify a valid limit.
const defaultAnalyticsLimit = 20

// Store defines the data access interface. Methods accept a
// context.Context for cancellation and timeouts. Lookups for absent
// records return (nil, nil) rather than an error.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// UpsertUser inserts a user with a zero balance if absent. An
	// existing user's balance and referrer are never overwritten.
	UpsertUser(ctx context.Context, userID int64, referredBy *int64) error

	// GetUser retrieves a user by ID. Returns nil, nil if not found.
	GetUser(ctx context.Context, userID int64) (*User, error)

	// ListUserIDs returns the IDs of all known users.
	ListUserIDs(ctx context.Context) ([]int64, error)

	// AdjustBalance adds delta to the user's balance. It is a no-op for
	// an unknown user; callers ensure existence via UpsertUser first.
	AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) error

	// ListTasks returns all tasks ordered by ID.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask retrieves a task by ID. Returns nil, nil if not found.
	GetTask(ctx context.Context, taskID int64) (*Task, error)

	// InsertTask appends a new task and returns it with its assigned ID.
	// Returns ErrInvalidReward unless the reward is positive.
	InsertTask(ctx context.Context, title, url string, reward decimal.Decimal) (*Task, error)

	// HasCompletion reports whether the user has completed the task.
	HasCompletion(ctx context.Context, userID, taskID int64) (bool, error)

	// RecordCompletion inserts a completion for the pair with the
	// current timestamp.
	RecordCompletion(ctx context.Context, userID, taskID int64) error

	// RecordAction appends an analytics entry with the current timestamp.
	RecordAction(ctx context.Context, userID int64, action string) error

	// RecentActions returns the most recent analytics entries, newest
	// first. A non-positive limit falls back to the default of 20.
	RecentActions(ctx context.Context, limit int) ([]AnalyticsEntry, error)
}

// sqlxStore implements Store using sqlx over SQLite.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store implementation backed by sqlx. It requires a
// connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) UpsertUser(ctx context.Context, userID int64, referredBy *int64) error {
	if userID == 0 {
		return fmt.Errorf("user_id cannot be zero")
	}

	query := `
        INSERT INTO users (user_id, balance, referred_by, created_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (user_id) DO NOTHING;
    `
	result, err := s.db.ExecContext(ctx, query, userID, decimal.Zero, referredBy, time.Now().UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error upserting user", "user_id", userID, "error", err)
		return fmt.Errorf("failed to upsert user %d: %w", userID, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 1 {
		s.logger.DebugContext(ctx, "User created", "user_id", userID, "referred_by", referredBy)
	}
	return nil
}

func (s *sqlxStore) GetUser(ctx context.Context, userID int64) (*User, error) {
	var user User
	query := `SELECT user_id, balance, referred_by, created_at FROM users WHERE user_id = ?`

	err := s.db.GetContext(ctx, &user, query, userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	return &user, nil
}

func (s *sqlxStore) ListUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, `SELECT user_id FROM users`); err != nil {
		s.logger.ErrorContext(ctx, "Error listing user IDs", "error", err)
		return nil, fmt.Errorf("failed to list user IDs: %w", err)
	}
	return ids, nil
}

// AdjustBalance reads and rewrites the balance inside a transaction.
// Balances are stored as decimal strings, so the arithmetic happens in
// Go rather than in SQL.
func (s *sqlxStore) AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	var balance decimal.Decimal
	err = tx.GetContext(ctx, &balance, `SELECT balance FROM users WHERE user_id = ?`, userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Unknown user: nothing to adjust.
		s.logger.WarnContext(ctx, "Balance adjustment for unknown user skipped", "user_id", userID)
		return nil
	case err != nil:
		return fmt.Errorf("failed to read balance for user %d: %w", userID, err)
	}

	newBalance := balance.Add(delta)
	if _, err := tx.ExecContext(ctx, `UPDATE users SET balance = ? WHERE user_id = ?`, newBalance, userID); err != nil {
		s.logger.ErrorContext(ctx, "Error updating balance", "user_id", userID, "error", err)
		return fmt.Errorf("failed to update balance for user %d: %w", userID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	s.logger.DebugContext(ctx, "Balance adjusted",
		"user_id", userID, "delta", delta.String(), "balance", newBalance.String())
	return nil
}

func (s *sqlxStore) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	query := `SELECT id, title, url, reward, created_at FROM tasks ORDER BY id`

	if err := s.db.SelectContext(ctx, &tasks, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing tasks", "error", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *sqlxStore) GetTask(ctx context.Context, taskID int64) (*Task, error) {
	var task Task
	query := `SELECT id, title, url, reward, created_at FROM tasks WHERE id = ?`

	err := s.db.GetContext(ctx, &task, query, taskID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting task", "task_id", taskID, "error", err)
		return nil, fmt.Errorf("failed to get task %d: %w", taskID, err)
	}

	return &task, nil
}

func (s *sqlxStore) InsertTask(ctx context.Context, title, url string, reward decimal.Decimal) (*Task, error) {
	if !reward.IsPositive() {
		return nil, ErrInvalidReward
	}

	task := Task{
		Title:     title,
		URL:       url,
		Reward:    reward,
		CreatedAt: time.Now().UTC(),
	}

	query := `INSERT INTO tasks (title, url, reward, created_at) VALUES (?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query, task.Title, task.URL, task.Reward, task.CreatedAt)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error inserting task", "title", title, "error", err)
		return nil, fmt.Errorf("failed to insert task %q: %w", title, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted task ID: %w", err)
	}
	task.ID = id

	s.logger.InfoContext(ctx, "Task inserted", "task_id", task.ID, "title", title, "reward", reward.String())
	return &task, nil
}

func (s *sqlxStore) HasCompletion(ctx context.Context, userID, taskID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM completions WHERE user_id = ? AND task_id = ?)`

	if err := s.db.GetContext(ctx, &exists, query, userID, taskID); err != nil {
		s.logger.ErrorContext(ctx, "Error checking completion",
			"user_id", userID, "task_id", taskID, "error", err)
		return false, fmt.Errorf("failed to check completion (user %d, task %d): %w", userID, taskID, err)
	}
	return exists, nil
}

func (s *sqlxStore) RecordCompletion(ctx context.Context, userID, taskID int64) error {
	query := `INSERT INTO completions (user_id, task_id, completed_at) VALUES (?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, userID, taskID, time.Now().UTC()); err != nil {
		s.logger.ErrorContext(ctx, "Error recording completion",
			"user_id", userID, "task_id", taskID, "error", err)
		return fmt.Errorf("failed to record completion (user %d, task %d): %w", userID, taskID, err)
	}

	s.logger.DebugContext(ctx, "Completion recorded", "user_id", userID, "task_id", taskID)
	return nil
}

func (s *sqlxStore) RecordAction(ctx context.Context, userID int64, action string) error {
	if action == "" {
		return fmt.Errorf("action cannot be empty")
	}

	query := `INSERT INTO analytics (user_id, action, recorded_at) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, userID, action, time.Now().UTC()); err != nil {
		s.logger.ErrorContext(ctx, "Error recording action",
			"user_id", userID, "action", action, "error", err)
		return fmt.Errorf("failed to record action %q for user %d: %w", action, userID, err)
	}
	return nil
}

func (s *sqlxStore) RecentActions(ctx context.Context, limit int) ([]AnalyticsEntry, error) {
	if limit <= 0 {
		limit = defaultAnalyticsLimit
	}

	var entries []AnalyticsEntry
	query := `
        SELECT id, user_id, action, recorded_at
        FROM analytics
        ORDER BY recorded_at DESC, id DESC
        LIMIT ?;
    `

	if err := s.db.SelectContext(ctx, &entries, query, limit); err != nil {
		s.logger.ErrorContext(ctx, "Error fetching recent actions", "limit", limit, "error", err)
		return nil, fmt.Errorf("failed to fetch recent actions: %w", err)
	}
	return entries, nil
}
