// Package tasks implements the scheduled jobs of the bot, along with
// their dependencies and registration.
package tasks

import (
	"log/slog"

	tgbot "github.com/go-telegram/bot"

	"earnbot/internal/config"
	"earnbot/internal/database"
)

// TaskDeps contains all dependencies required by scheduled jobs.
type TaskDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  database.Store
	TG     *tgbot.Bot
}
