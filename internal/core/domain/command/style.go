package command

import (
	"context"
	"errors"
	"fmt"
	"mural/internal/core/domain"
	"mural/internal/core/port"
	"mural/internal/core/service"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const styleUsage = "Usage: %s <style>. Send a photo first, then pick one of: %s. Any other text is used as a custom style."

// Style submits the chat's current image with the requested style.
type Style struct {
	sessions   port.Sessions
	textSender port.TextSender
	auth       service.Authorizer
	track      service.Tracker
	command    string
}

func NewStyle(sessions port.Sessions,
	textSender port.TextSender,
	auth service.Authorizer,
	track service.Tracker,
	command string) *Style {
	return &Style{sessions: sessions,
		textSender: textSender,
		auth:       auth,
		track:      track,
		command:    command}
}

func (s *Style) GetCommand() string {
	return s.command
}

func (s *Style) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	style := canonicalStyle(domain.ParseCommandArgs(message.Text))

	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("style", style).
		Str("command", s.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if !s.auth.IsAuthorized(ctx, message.ChatID) {
		l.Debug().Msg("not authorized")
		return nil
	}

	if style == "" {
		_, err := s.textSender.SendMessage(ctx, message.ChatID, fmt.Sprintf(styleUsage, s.command, styleNames()))
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
		}
		return nil
	}

	if !s.track.CheckLimit(ctx, message.ChatID) {
		l.Debug().Msg("daily limit reached")
		return nil
	}

	err := s.sessions.Session(message.ChatID).SelectStyle(ctx, style)
	if errors.Is(err, domain.ErrNoAssetSelected) {
		l.Debug().Msg("no image in session")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error selecting style: %w", err)
	}

	s.track.AddSubmission(message.ChatID)

	return nil
}

// canonicalStyle maps a case-insensitive catalog name to its catalog spelling. Unknown names pass through
// unchanged as custom styles.
func canonicalStyle(name string) string {
	for _, option := range domain.Styles() {
		if strings.EqualFold(option.Name, name) {
			return option.Name
		}
	}

	return name
}

func styleNames() string {
	options := domain.Styles()
	names := make([]string, len(options))
	for i, option := range options {
		names[i] = option.Name
	}

	return strings.Join(names, ", ")
}
