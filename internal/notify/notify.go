// Package notify delivers reminder messages to chat recipients.
package notify

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

type TelegramNotifier struct {
	bot *telebot.Bot
}

func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	bot, err := telebot.NewBot(telebot.Settings{Token: token})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot}, nil
}

func (notifier *TelegramNotifier) Send(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := notifier.bot.Send(&telebot.Chat{ID: chatID}, text, &telebot.SendOptions{DisableWebPagePreview: true})
	return err
}

// LogNotifier writes reminders to the log. Used when no bot token is configured.
type LogNotifier struct {
	log *logrus.Entry
}

func NewLogNotifier(log *logrus.Entry) *LogNotifier {
	return &LogNotifier{log: log}
}

func (notifier *LogNotifier) Send(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	notifier.log.WithField("chat_id", chatID).Info(text)
	return nil
}
