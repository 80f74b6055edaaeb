package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/SeriesLens/internal/metrics"
)

var ErrNoRecipients = errors.New("no telegram chat ids configured")

// Telegram allows 30 messages per second for bots
const defaultDelay = 50 * time.Millisecond

// Sender is the part of the bot API used for delivery. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram delivers reports to a list of chats
type Telegram struct {
	sender Sender
	delay  time.Duration
	logger zerolog.Logger
}

// NewTelegram creates a notifier backed by the bot API
func NewTelegram(token string) (*Telegram, error) {
	if token == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN not set")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	return NewTelegramWithSender(bot, defaultDelay), nil
}

// NewTelegramWithSender creates a notifier on top of any sender
func NewTelegramWithSender(sender Sender, delay time.Duration) *Telegram {
	return &Telegram{
		sender: sender,
		delay:  delay,
		logger: log.With().Str("component", "telegram").Logger(),
	}
}

// Broadcast sends text to every chat, pausing between messages. It keeps going after a failed
// chat and reports all failures at the end.
func (t *Telegram) Broadcast(ctx context.Context, chatIDs []int64, text string) error {
	if len(chatIDs) == 0 {
		return ErrNoRecipients
	}

	var errs []error
	sent := 0
	for i, chatID := range chatIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown

		if _, err := t.sender.Send(msg); err != nil {
			metrics.NotificationsTotal.WithLabelValues("error").Inc()
			t.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		} else {
			metrics.NotificationsTotal.WithLabelValues("ok").Inc()
			t.logger.Debug().Int64("chat_id", chatID).Msgf("Message sent [%d/%d]", i+1, len(chatIDs))
			sent++
		}

		if i < len(chatIDs)-1 && t.delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(t.delay):
			}
		}
	}

	t.logger.Info().Int("sent", sent).Int("failed", len(errs)).Int("total", len(chatIDs)).Msg("Broadcast completed")

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d messages failed: %w", len(errs), len(chatIDs), errors.Join(errs...))
	}
	return nil
}
