package notify

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/telebot.v3"
)

type telegramSender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelegramSink posts every message to the operations chat. The to address is
// only quoted in the text.
type TelegramSink struct {
	bot    telegramSender
	chatID telebot.ChatID
}

func NewTelegramSink(token string, chatID int64) (*TelegramSink, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramSink{bot: bot, chatID: telebot.ChatID(chatID)}, nil
}

func (sink *TelegramSink) Notify(ctx context.Context, to string, subject string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var builder strings.Builder
	builder.WriteString(subject)
	if to = strings.TrimSpace(to); to != "" {
		builder.WriteString("\n→ " + to)
	}
	if text != "" {
		builder.WriteString("\n\n" + text)
	}

	if _, err := sink.bot.Send(sink.chatID, builder.String()); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
