// Package telegram wraps the go-telegram/bot client: bot construction,
// command registration, and outbound send helpers.
package telegram

import (
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
)

// Command describes a single registered bot command.
type Command struct {
	Pattern    string
	Handler    tgbot.HandlerFunc
	Middleware []tgbot.Middleware
}

// NewTelegramBot creates the Telegram bot client with the given token
// and options.
func NewTelegramBot(token string, log *slog.Logger, opts ...tgbot.Option) (*tgbot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is empty")
	}

	b, err := tgbot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Debug("Telegram bot client created")
	return b, nil
}

// RegisterHandlers attaches all command handlers to the bot. Commands
// match on the leading /command token only, so arguments pass through.
func RegisterHandlers(b *tgbot.Bot, log *slog.Logger, commands map[string]Command) error {
	if b == nil {
		return fmt.Errorf("telegram bot is nil")
	}

	for name, cmd := range commands {
		if cmd.Handler == nil {
			return fmt.Errorf("command %q has no handler", name)
		}
		b.RegisterHandler(
			tgbot.HandlerTypeMessageText,
			cmd.Pattern,
			tgbot.MatchTypeCommandStartOnly,
			cmd.Handler,
			cmd.Middleware...,
		)
		log.Debug("Registered command handler", "command", name)
	}

	log.Info("Telegram handlers registered", "count", len(commands))
	return nil
}
