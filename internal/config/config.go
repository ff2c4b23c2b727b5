// Package config provides configuration loading and validation for the
// earnbot application. Values come from defaults, an optional YAML file,
// and BOT_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot token and the set of administrator user IDs.
type TelegramConfig struct {
	Token    string  `mapstructure:"token"     validate:"required"`
	AdminIDs []int64 `mapstructure:"admin_ids" validate:"min=1,dive,gt=0"`
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// SchedulerConfig maps job names to their schedules.
type SchedulerConfig struct {
	Jobs map[string]JobConfig `mapstructure:"jobs" validate:"dive"`
}

// JobConfig describes a single recurring job. StartAt is optional RFC 3339;
// when set and in the future, the first run is delayed until that instant.
type JobConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval" validate:"omitempty,min=1m"`
	StartAt  string        `mapstructure:"start_at"`
}

// StartTime parses the configured first-fire time. The second return
// value is false when no start time is configured.
func (j JobConfig) StartTime() (time.Time, bool) {
	if j.StartAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, j.StartAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MessagesConfig holds all user-facing reply strings.
type MessagesConfig struct {
	Welcome          string `mapstructure:"welcome"`
	NoTasks          string `mapstructure:"no_tasks"`
	TaskAnnouncement string `mapstructure:"task_announcement"` // format: title, reward
	TaskButton       string `mapstructure:"task_button"`
	DoneUsage        string `mapstructure:"done_usage"`
	AlreadyCompleted string `mapstructure:"already_completed"`
	InvalidTaskID    string `mapstructure:"invalid_task_id"`
	TaskCompleted    string `mapstructure:"task_completed"` // format: reward
	Balance          string `mapstructure:"balance"`        // format: balance
	AddTaskUsage     string `mapstructure:"addtask_usage"`
	TaskAdded        string `mapstructure:"task_added"` // format: task id
	BroadcastUsage   string `mapstructure:"broadcast_usage"`
	BroadcastSent    string `mapstructure:"broadcast_sent"` // format: sent, failed
	AnalyticsHeader  string `mapstructure:"analytics_header"`
	NotAuthorized    string `mapstructure:"not_authorized"`
	GeneralError     string `mapstructure:"general_error"`
}

// DailyTasksJob is the scheduler key for the daily task announcement push.
const DailyTasksJob = "daily_tasks"

// LoadConfig reads configuration from the given YAML file (optional),
// layered over defaults, with BOT_* environment variable overrides.
// The result is validated before being returned.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, everything can come from
		// defaults and environment variables.
		if !errors.Is(err, fs.ErrNotExist) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	for name, job := range cfg.Scheduler.Jobs {
		if job.StartAt == "" {
			continue
		}
		if _, err := time.Parse(time.RFC3339, job.StartAt); err != nil {
			return nil, fmt.Errorf("invalid configuration: job %q start_at: %w", name, err)
		}
	}

	return cfg, nil
}

// IsAdmin reports whether the given Telegram user ID is a configured
// administrator.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Telegram.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", true)

	// Registered empty so BOT_TELEGRAM_* environment overrides are
	// visible to Unmarshal; validation still rejects the zero values.
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_ids", []int64{})

	v.SetDefault("database.path", "earnbot.db")

	v.SetDefault("scheduler.jobs.daily_tasks.enabled", true)
	v.SetDefault("scheduler.jobs.daily_tasks.interval", 24*time.Hour)

	v.SetDefault("messages.welcome", "Welcome to Auto Earning Bot! Use /tasks to start earning.")
	v.SetDefault("messages.no_tasks", "No tasks available right now.")
	v.SetDefault("messages.task_announcement", "🧾 Task: %s\n💰 Reward: $%s")
	v.SetDefault("messages.task_button", "Do Task")
	v.SetDefault("messages.done_usage", "Usage: /done <task_id>")
	v.SetDefault("messages.already_completed", "You already completed this task!")
	v.SetDefault("messages.invalid_task_id", "Invalid task ID.")
	v.SetDefault("messages.task_completed", "✅ Task Completed! You earned $%s")
	v.SetDefault("messages.balance", "💸 Your current balance is $%s")
	v.SetDefault("messages.addtask_usage", "Usage: /addtask |Title|URL|Reward")
	v.SetDefault("messages.task_added", "✅ Task added successfully! (id %d)")
	v.SetDefault("messages.broadcast_usage", "Usage: /broadcast <message>")
	v.SetDefault("messages.broadcast_sent", "Broadcast sent to %d users (%d failed).")
	v.SetDefault("messages.analytics_header", "📊 Last 20 Actions:")
	v.SetDefault("messages.not_authorized", "Not authorized.")
	v.SetDefault("messages.general_error", "An error occurred. Please try again later.")
}
