package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"earnbot/internal/telegram"
)

// NewTasksHandler returns a handler for the /tasks command.
func NewTasksHandler(deps HandlerDeps) bot.HandlerFunc {
	return tasksHandler{deps}.Handle
}

// tasksHandler lists all available tasks, one message per task with a
// URL button.
type tasksHandler struct {
	deps HandlerDeps
}

func (h tasksHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "tasks")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Tasks handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /tasks command", "chat_id", chatID, "user_id", update.Message.From.ID)

	tasks, err := h.deps.Store.ListTasks(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list tasks", "error", err, "chat_id", chatID)
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	if len(tasks) == 0 {
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.NoTasks)
		return
	}

	msgs := h.deps.Config.Messages
	report := telegram.AnnounceTasks(ctx, b, log, chatID, tasks, msgs.TaskAnnouncement, msgs.TaskButton)
	log.DebugContext(ctx, "Task list sent", "chat_id", chatID, "sent", report.Sent, "failed", report.Failed)
}
