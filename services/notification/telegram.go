package notification

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier sends booking notifications to the owner's Telegram chat.
type TelegramNotifier struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	location *time.Location
}

// NewTelegramNotifier builds a notifier for the given bot token and chat id.
func NewTelegramNotifier(botToken, chatID string, loc *time.Location) (*TelegramNotifier, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat id %q: %w", chatID, err)
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{
		bot:      bot,
		chatID:   id,
		location: loc,
	}, nil
}

// NotifyBooking sends a Markdown-formatted summary of the booking.
func (t *TelegramNotifier) NotifyBooking(ctx context.Context, b Booking) error {
	topic := b.Topic
	if topic == "" {
		topic = "Not specified"
	}
	when := b.Start.In(t.location).Format("Monday, 2 January 2006 15:04")

	text := fmt.Sprintf(`📅 *New booking!*

👤 *Name:* %s
📧 *Email:* %s
📝 *Topic:* %s
🕐 *Time:* %s
⏱ *Duration:* %d min`,
		escapeMarkdown(b.AttendeeName),
		escapeMarkdown(b.AttendeeEmail),
		escapeMarkdown(topic),
		escapeMarkdown(when),
		int(b.Duration.Minutes()),
	)

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	// The bot API client has no context plumbing; honor cancellation before
	// the send at least.
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}
	return nil
}

var markdownEscaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(", ")", "\\)",
	"~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#", "+", "\\+", "-", "\\-",
	"=", "\\=", "|", "\\|", "{", "\\{", "}", "\\}", ".", "\\.", "!", "\\!",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
