package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// analyticsDisplayLimit is how many recent actions the /analytics reply
// shows.
const analyticsDisplayLimit = 20

// analyticsTimeFormat matches the original log display format.
const analyticsTimeFormat = "2006-01-02 15:04:05"

// NewAnalyticsHandler returns a handler for the admin-only /analytics
// command.
func NewAnalyticsHandler(deps HandlerDeps) bot.HandlerFunc {
	return analyticsHandler{deps}.Handle
}

// analyticsHandler replies with the most recent recorded user actions,
// newest first.
type analyticsHandler struct {
	deps HandlerDeps
}

func (h analyticsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "analytics")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Analytics handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /analytics command", "chat_id", chatID, "user_id", update.Message.From.ID)

	entries, err := h.deps.Store.RecentActions(ctx, analyticsDisplayLimit)
	if err != nil {
		log.ErrorContext(ctx, "Failed to fetch recent actions", "error", err)
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	var reply strings.Builder
	reply.WriteString(h.deps.Config.Messages.AnalyticsHeader)
	for _, entry := range entries {
		reply.WriteString(fmt.Sprintf("\n👤 %d - %s at %s",
			entry.UserID, entry.Action, entry.RecordedAt.Format(analyticsTimeFormat)))
	}

	sendReply(ctx, b, log, chatID, reply.String())
}
