package notify

import (
	"context"
	"fmt"
	"strconv"

	"venue-booking/internal/pkg/errs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrInvalidChatID = errs.New("invalid telegram chat id")

// BotAPI is the subset of *tgbotapi.BotAPI used for delivery.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramSender struct {
	bot BotAPI
}

func NewTelegramSender(token string) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramSender{bot: bot}, nil
}

func NewTelegramSenderWithBot(bot BotAPI) *TelegramSender {
	return &TelegramSender{bot: bot}
}

// Send posts plain text to the chat id in destination. The bot client has no
// context support, so the call races against ctx.
func (s *TelegramSender) Send(ctx context.Context, message, destination string) error {
	chatID, err := strconv.ParseInt(destination, 10, 64)
	if err != nil {
		return errs.Mark(err, ErrInvalidChatID)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.bot.Send(tgbotapi.NewMessage(chatID, message))
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return errs.Wrap(err, "telegram send")
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
