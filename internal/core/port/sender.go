package port

import (
	"context"
	"mural/internal/core/domain"
)

type TextSender interface {
	// SendMessage sends text to a chat and returns the sent message ID.
	SendMessage(ctx context.Context, chatID int64, text string) (int, error)
	// SendChatAction sends a chat action (e.g., typing, sending photo) to indicate activity in a given chat.
	SendChatAction(ctx context.Context, chatID int64, action domain.Action)
}

type ImageSender interface {
	// SendImageURL sends an image to the chat by URL.
	SendImageURL(ctx context.Context, chatID int64, url string) error
}
