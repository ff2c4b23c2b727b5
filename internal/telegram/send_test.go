package telegram_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"

	"earnbot/internal/database"
	"earnbot/internal/telegram"
)

// fakeSender records sent messages and fails for chat IDs listed in
// failFor.
type fakeSender struct {
	sent    []*tgbot.SendMessageParams
	failFor map[int64]bool
}

func (f *fakeSender) SendMessage(_ context.Context, params *tgbot.SendMessageParams) (*models.Message, error) {
	if f.failFor[params.ChatID.(int64)] {
		return nil, errors.New("send failed")
	}
	f.sent = append(f.sent, params)
	return &models.Message{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const announceFormat = "🧾 Task: %s\n💰 Reward: $%s"

func TestFormatTask(t *testing.T) {
	t.Parallel()

	task := database.Task{Title: "Survey", Reward: decimal.RequireFromString("2.5")}
	got := telegram.FormatTask(announceFormat, task)
	want := "🧾 Task: Survey\n💰 Reward: $2.50"
	if got != want {
		t.Errorf("FormatTask = %q, want %q", got, want)
	}
}

func TestAnnounceTaskCarriesURLButton(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	task := database.Task{ID: 1, Title: "Survey", URL: "http://x.test", Reward: decimal.RequireFromString("2.50")}

	if err := telegram.AnnounceTask(context.Background(), sender, 100, task, announceFormat, "Do Task"); err != nil {
		t.Fatalf("AnnounceTask failed: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}

	markup, ok := sender.sent[0].ReplyMarkup.(*models.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("reply markup is %T, want *models.InlineKeyboardMarkup", sender.sent[0].ReplyMarkup)
	}
	if len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 1 {
		t.Fatal("expected a single button row with one button")
	}
	button := markup.InlineKeyboard[0][0]
	if button.Text != "Do Task" || button.URL != "http://x.test" {
		t.Errorf("button = %+v, want Do Task -> http://x.test", button)
	}
}

func TestBroadcastSkipsFailures(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{failFor: map[int64]bool{200: true}}
	userIDs := []int64{100, 200, 300}

	report := telegram.Broadcast(context.Background(), sender, discardLogger(), userIDs, "Hello")

	if report.Sent != 2 || report.Failed != 1 {
		t.Errorf("report = %+v, want Sent 2 Failed 1", report)
	}
	if report.Attempted() != 3 {
		t.Errorf("attempted = %d, want 3", report.Attempted())
	}

	// The failing recipient must not stop later recipients.
	if len(sender.sent) != 2 {
		t.Fatalf("delivered %d messages, want 2", len(sender.sent))
	}
	if sender.sent[1].ChatID.(int64) != 300 {
		t.Errorf("last recipient = %v, want 300", sender.sent[1].ChatID)
	}
}

func TestPushTasksSendsEveryPair(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{failFor: map[int64]bool{200: true}}
	userIDs := []int64{100, 200}
	tasks := []database.Task{
		{ID: 1, Title: "Survey", URL: "http://x.test", Reward: decimal.RequireFromString("2.50")},
		{ID: 2, Title: "Video", URL: "http://y.test", Reward: decimal.RequireFromString("0.10")},
	}

	report := telegram.PushTasks(context.Background(), sender, discardLogger(), userIDs, tasks, announceFormat, "Do Task")

	if report.Sent != 2 || report.Failed != 2 {
		t.Errorf("report = %+v, want Sent 2 Failed 2", report)
	}
	for _, params := range sender.sent {
		if params.ChatID.(int64) != 100 {
			t.Errorf("delivered to chat %v, want only 100", params.ChatID)
		}
	}
}
