package presenter

import (
	"context"
	"mural/internal/core/domain"
	"mural/internal/core/port"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DeliveryTimeout bounds sending a notice or result photo. Delivery is detached from the request context so
// that a request which ran out of time still reaches the chat.
const DeliveryTimeout = 30 * time.Second

// Telegram renders pipeline state into one chat: notices as text, an upload action while a request is in
// flight and the result photo once it is displayed.
type Telegram struct {
	chatID      int64
	textSender  port.TextSender
	imageSender port.ImageSender

	mu         sync.Mutex
	stopAction context.CancelFunc
	shownURL   string
}

func NewTelegram(chatID int64, textSender port.TextSender, imageSender port.ImageSender) *Telegram {
	return &Telegram{chatID: chatID, textSender: textSender, imageSender: imageSender}
}

func (t *Telegram) Notify(ctx context.Context, notice domain.Notice) {
	ctx, cancel := deliveryContext(ctx)
	defer cancel()

	_, err := t.textSender.SendMessage(ctx, t.chatID, notice.String())
	if err != nil {
		log.Error().Err(err).Int64("chatId", t.chatID).Msg(domain.ErrSendingReplyFailed.Error())
	}
}

func (t *Telegram) Render(ctx context.Context, state domain.PipelineState) {
	var sendURL string

	t.mu.Lock()
	switch {
	case state.InFlight && t.stopAction == nil:
		actionCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		t.stopAction = cancel
		go t.textSender.SendChatAction(actionCtx, t.chatID, domain.SendingPhoto)
	case !state.InFlight && t.stopAction != nil:
		t.stopAction()
		t.stopAction = nil
	}

	switch state.Phase {
	case domain.AssetSelected, domain.Idle:
		t.shownURL = ""
	case domain.Displayed:
		if state.DisplayURL != "" && state.DisplayURL != t.shownURL {
			t.shownURL = state.DisplayURL
			sendURL = state.DisplayURL
		}
	}
	t.mu.Unlock()

	if sendURL == "" {
		return
	}

	ctx, cancel := deliveryContext(ctx)
	defer cancel()

	if err := t.imageSender.SendImageURL(ctx, t.chatID, sendURL); err != nil {
		log.Error().Err(err).Int64("chatId", t.chatID).Msg("failed to display result")
	}
}

func deliveryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), DeliveryTimeout)
}
