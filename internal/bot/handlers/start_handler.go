package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// actionStartedBot is the analytics label recorded when a user starts
// the bot.
const actionStartedBot = "started bot"

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler processes the /start command: it registers the user with
// an optional referrer, records the analytics action, and replies with
// the welcome message.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID
	referredBy := parseStartReferrer(update.Message.Text)

	log.InfoContext(ctx, "Handling /start command", "chat_id", chatID, "user_id", userID)

	if err := h.deps.Store.UpsertUser(ctx, userID, referredBy); err != nil {
		log.ErrorContext(ctx, "Failed to upsert user", "error", err, "user_id", userID)
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	if err := h.deps.Store.RecordAction(ctx, userID, actionStartedBot); err != nil {
		// The analytics log is best-effort; the user is already registered.
		log.ErrorContext(ctx, "Failed to record start action", "error", err, "user_id", userID)
	}

	sendReply(ctx, b, log, chatID, h.deps.Config.Messages.Welcome)
}

// sendReply sends a plain text reply and logs a failure. Handlers use it
// for their single terminal reply.
func sendReply(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
	}
}
