package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewDoneHandler returns a handler for the /done command.
func NewDoneHandler(deps HandlerDeps) bot.HandlerFunc {
	return doneHandler{deps}.Handle
}

// doneHandler processes a task completion claim. A task can be claimed
// at most once per user; the second claim is rejected without mutation.
type doneHandler struct {
	deps HandlerDeps
}

func (h doneHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "done")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Done handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID
	msgs := h.deps.Config.Messages

	taskID, ok := parseDoneTaskID(update.Message.Text)
	if !ok {
		sendReply(ctx, b, log, chatID, msgs.DoneUsage)
		return
	}

	log.InfoContext(ctx, "Handling /done command", "chat_id", chatID, "user_id", userID, "task_id", taskID)

	done, err := h.deps.Store.HasCompletion(ctx, userID, taskID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to check completion", "error", err, "user_id", userID, "task_id", taskID)
		sendReply(ctx, b, log, chatID, msgs.GeneralError)
		return
	}
	if done {
		sendReply(ctx, b, log, chatID, msgs.AlreadyCompleted)
		return
	}

	task, err := h.deps.Store.GetTask(ctx, taskID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to get task", "error", err, "task_id", taskID)
		sendReply(ctx, b, log, chatID, msgs.GeneralError)
		return
	}
	if task == nil {
		sendReply(ctx, b, log, chatID, msgs.InvalidTaskID)
		return
	}

	if err := h.deps.Store.AdjustBalance(ctx, userID, task.Reward); err != nil {
		log.ErrorContext(ctx, "Failed to credit reward", "error", err, "user_id", userID, "task_id", taskID)
		sendReply(ctx, b, log, chatID, msgs.GeneralError)
		return
	}

	if err := h.deps.Store.RecordCompletion(ctx, userID, taskID); err != nil {
		log.ErrorContext(ctx, "Failed to record completion", "error", err, "user_id", userID, "task_id", taskID)
		sendReply(ctx, b, log, chatID, msgs.GeneralError)
		return
	}

	log.InfoContext(ctx, "Task completed",
		"user_id", userID, "task_id", taskID, "reward", task.Reward.String())
	sendReply(ctx, b, log, chatID, fmt.Sprintf(msgs.TaskCompleted, task.Reward.StringFixed(2)))
}
