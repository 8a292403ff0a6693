package telegram

import (
	"context"

	"gopkg.in/telebot.v3"
)

// Client sends messages to Telegram chats. The digest service depends on this interface
// rather than on *telebot.Bot so it can be exercised without a network.
type Client interface {
	SendMessage(ctx context.Context, chatID int64, text string, options *telebot.SendOptions) error
}
