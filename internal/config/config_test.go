package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"earnbot/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

const validConfig = `
telegram:
  token: "test-token"
  admin_ids: [123456789]
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Logger.Level != "info" {
		t.Errorf("default log level = %q, want info", cfg.Logger.Level)
	}
	if cfg.Database.Path != "earnbot.db" {
		t.Errorf("default db path = %q, want earnbot.db", cfg.Database.Path)
	}
	if cfg.Messages.Welcome == "" || cfg.Messages.NotAuthorized == "" {
		t.Error("default messages missing")
	}

	job, ok := cfg.Scheduler.Jobs[config.DailyTasksJob]
	if !ok {
		t.Fatal("daily_tasks job not present in defaults")
	}
	if !job.Enabled {
		t.Error("daily_tasks not enabled by default")
	}
	if job.Interval != 24*time.Hour {
		t.Errorf("daily_tasks interval = %v, want 24h", job.Interval)
	}
}

func TestLoadConfigMissingFileUsesEnv(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "env-token")
	t.Setenv("BOT_TELEGRAM_ADMIN_IDS", "123456789")

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig with missing file failed: %v", err)
	}
	if cfg.Telegram.Token != "env-token" {
		t.Errorf("token = %q, want env-token", cfg.Telegram.Token)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing token",
			content: `
telegram:
  admin_ids: [1]
`,
		},
		{
			name: "empty admin set",
			content: `
telegram:
  token: "t"
  admin_ids: []
`,
		},
		{
			name: "invalid log level",
			content: validConfig + `
logger:
  level: loud
`,
		},
		{
			name: "interval below minimum",
			content: validConfig + `
scheduler:
  jobs:
    daily_tasks:
      enabled: true
      interval: 30s
`,
		},
		{
			name: "invalid start_at",
			content: validConfig + `
scheduler:
  jobs:
    daily_tasks:
      enabled: true
      interval: 24h
      start_at: "next tuesday"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.LoadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("LoadConfig succeeded, want validation error")
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, `
telegram:
  token: "t"
  admin_ids: [1, 2]
`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !cfg.IsAdmin(1) || !cfg.IsAdmin(2) {
		t.Error("configured admins not recognized")
	}
	if cfg.IsAdmin(3) {
		t.Error("non-admin recognized as admin")
	}
}

func TestJobConfigStartTime(t *testing.T) {
	t.Parallel()

	job := config.JobConfig{StartAt: "2025-04-09T09:00:00Z"}
	got, ok := job.StartTime()
	if !ok {
		t.Fatal("StartTime returned not-ok for a valid timestamp")
	}
	want := time.Date(2025, 4, 9, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartTime = %v, want %v", got, want)
	}

	if _, ok := (config.JobConfig{}).StartTime(); ok {
		t.Error("StartTime returned ok for an empty value")
	}
}
