package notify

import (
	"context"
	"fmt"
	"html"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskmanager/internal/model"
)

// TelegramNotifier sends task lifecycle notifications to a Telegram chat.
// Delivery is best-effort: failures are logged, never returned to the
// operation that triggered them.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram api: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

// TaskCompleted announces a completed task.
func (n *TelegramNotifier) TaskCompleted(_ context.Context, task *model.Task) {
	text := fmt.Sprintf("✅ Task completed: <b>%s</b>", html.EscapeString(task.Title))
	if task.CompletedAt != nil {
		text += fmt.Sprintf("\n🗓 %s", task.CompletedAt.Format("02.01.2006 15:04"))
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.api.Send(msg); err != nil {
		log.Printf("telegram notify: %v", err)
	}
}
