package handlers

import (
	tgbot "github.com/go-telegram/bot"

	"earnbot/internal/telegram"
)

// RegisterAllCommands initializes and returns the map of all bot
// commands keyed by their command string, ready for registration.
func RegisterAllCommands(deps HandlerDeps) map[string]telegram.Command {
	adminMiddleware := []tgbot.Middleware{AdminOnly(deps)}

	return map[string]telegram.Command{
		"/start": {
			Pattern: "start",
			Handler: NewStartHandler(deps),
		},
		"/tasks": {
			Pattern: "tasks",
			Handler: NewTasksHandler(deps),
		},
		"/done": {
			Pattern: "done",
			Handler: NewDoneHandler(deps),
		},
		"/balance": {
			Pattern: "balance",
			Handler: NewBalanceHandler(deps),
		},
		"/addtask": {
			Pattern:    "addtask",
			Handler:    NewAddTaskHandler(deps),
			Middleware: adminMiddleware,
		},
		"/broadcast": {
			Pattern:    "broadcast",
			Handler:    NewBroadcastHandler(deps),
			Middleware: adminMiddleware,
		},
		"/analytics": {
			Pattern:    "analytics",
			Handler:    NewAnalyticsHandler(deps),
			Middleware: adminMiddleware,
		},
	}
}
