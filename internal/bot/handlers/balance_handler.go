package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
)

// NewBalanceHandler returns a handler for the /balance command.
func NewBalanceHandler(deps HandlerDeps) bot.HandlerFunc {
	return balanceHandler{deps}.Handle
}

type balanceHandler struct {
	deps HandlerDeps
}

func (h balanceHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "balance")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Balance handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID
	log.InfoContext(ctx, "Handling /balance command", "chat_id", chatID, "user_id", userID)

	user, err := h.deps.Store.GetUser(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to get user", "error", err, "user_id", userID)
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	// A user who never ran /start has no row; treat that as a zero balance.
	balance := decimal.Zero
	if user != nil {
		balance = user.Balance
	}

	sendReply(ctx, b, log, chatID, fmt.Sprintf(h.deps.Config.Messages.Balance, balance.StringFixed(2)))
}
