package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"earnbot/internal/database"
)

// NewAddTaskHandler returns a handler for the admin-only /addtask
// command.
func NewAddTaskHandler(deps HandlerDeps) bot.HandlerFunc {
	return addTaskHandler{deps}.Handle
}

// addTaskHandler inserts a new task from "/addtask |Title|URL|Reward".
// Malformed input yields a usage reply and never partially inserts.
type addTaskHandler struct {
	deps HandlerDeps
}

func (h addTaskHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "addtask")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "AddTask handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	msgs := h.deps.Config.Messages

	title, url, reward, err := parseAddTask(update.Message.Text)
	if err != nil {
		log.InfoContext(ctx, "Rejected malformed /addtask", "chat_id", chatID, "reason", err)
		sendReply(ctx, b, log, chatID, msgs.AddTaskUsage)
		return
	}

	log.InfoContext(ctx, "Handling /addtask command",
		"chat_id", chatID, "user_id", update.Message.From.ID, "title", title)

	task, err := h.deps.Store.InsertTask(ctx, title, url, reward)
	if err != nil {
		if errors.Is(err, database.ErrInvalidReward) {
			sendReply(ctx, b, log, chatID, msgs.AddTaskUsage)
			return
		}
		log.ErrorContext(ctx, "Failed to insert task", "error", err, "title", title)
		sendReply(ctx, b, log, chatID, msgs.GeneralError)
		return
	}

	sendReply(ctx, b, log, chatID, fmt.Sprintf(msgs.TaskAdded, task.ID))
}
