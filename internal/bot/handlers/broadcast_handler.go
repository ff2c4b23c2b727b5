package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"earnbot/internal/telegram"
)

// NewBroadcastHandler returns a handler for the admin-only /broadcast
// command.
func NewBroadcastHandler(deps HandlerDeps) bot.HandlerFunc {
	return broadcastHandler{deps}.Handle
}

// broadcastHandler sends free text to every known user. Individual send
// failures are skipped; the admin reply reports the totals.
type broadcastHandler struct {
	deps HandlerDeps
}

func (h broadcastHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "broadcast")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Broadcast handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	msgs := h.deps.Config.Messages

	text := parseBroadcastText(update.Message.Text)
	if text == "" {
		sendReply(ctx, b, log, chatID, msgs.BroadcastUsage)
		return
	}

	userIDs, err := h.deps.Store.ListUserIDs(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list users for broadcast", "error", err)
		sendReply(ctx, b, log, chatID, msgs.GeneralError)
		return
	}

	log.InfoContext(ctx, "Starting broadcast",
		"user_id", update.Message.From.ID, "recipients", len(userIDs))

	report := telegram.Broadcast(ctx, b, log, userIDs, text)

	log.InfoContext(ctx, "Broadcast finished", "sent", report.Sent, "failed", report.Failed)
	sendReply(ctx, b, log, chatID, fmt.Sprintf(msgs.BroadcastSent, report.Sent, report.Failed))
}
