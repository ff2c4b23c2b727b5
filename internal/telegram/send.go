package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"earnbot/internal/database"
)

// Sender is the outbound message surface used by send helpers. *bot.Bot
// satisfies it; tests substitute a fake.
type Sender interface {
	SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*models.Message, error)
}

// SendReport summarizes a best-effort send loop. Individual failures are
// logged and skipped; the report lets callers surface partial failure.
type SendReport struct {
	Sent   int
	Failed int
}

// Attempted returns the total number of sends attempted.
func (r SendReport) Attempted() int {
	return r.Sent + r.Failed
}

func (r *SendReport) add(other SendReport) {
	r.Sent += other.Sent
	r.Failed += other.Failed
}

// FormatTask renders a task announcement body. format carries two %s
// verbs: title and reward formatted to two decimal places.
func FormatTask(format string, task database.Task) string {
	return fmt.Sprintf(format, task.Title, task.Reward.StringFixed(2))
}

// AnnounceTask sends a single task announcement with a URL button to the
// given chat.
func AnnounceTask(ctx context.Context, s Sender, chatID int64, task database.Task, format, buttonText string) error {
	_, err := s.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   FormatTask(format, task),
		ReplyMarkup: InlineKeyboard(
			ButtonRow(URLButton(buttonText, task.URL)),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to announce task %d to chat %d: %w", task.ID, chatID, err)
	}
	return nil
}

// AnnounceTasks sends one announcement per task to a single chat. A
// failed send does not stop the remaining tasks from being attempted.
func AnnounceTasks(ctx context.Context, s Sender, log *slog.Logger, chatID int64, tasks []database.Task, format, buttonText string) SendReport {
	var report SendReport
	for _, task := range tasks {
		if err := AnnounceTask(ctx, s, chatID, task, format, buttonText); err != nil {
			log.WarnContext(ctx, "Task announcement failed",
				"chat_id", chatID, "task_id", task.ID, "error", err)
			report.Failed++
			continue
		}
		report.Sent++
	}
	return report
}

// Broadcast sends text to every given user, skipping individual send
// failures so the loop always attempts all recipients.
func Broadcast(ctx context.Context, s Sender, log *slog.Logger, userIDs []int64, text string) SendReport {
	var report SendReport
	for _, userID := range userIDs {
		_, err := s.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: userID,
			Text:   text,
		})
		if err != nil {
			log.WarnContext(ctx, "Broadcast send failed", "user_id", userID, "error", err)
			report.Failed++
			continue
		}
		report.Sent++
	}
	return report
}

// PushTasks sends every task to every user, one message per (user, task)
// pair. Per-pair failures are skipped.
func PushTasks(ctx context.Context, s Sender, log *slog.Logger, userIDs []int64, tasks []database.Task, format, buttonText string) SendReport {
	var report SendReport
	for _, userID := range userIDs {
		report.add(AnnounceTasks(ctx, s, log, userID, tasks, format, buttonText))
	}
	return report
}
