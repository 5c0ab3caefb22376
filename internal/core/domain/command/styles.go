package command

import (
	"context"
	"fmt"
	"mural/internal/core/domain"
	"mural/internal/core/port"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Styles lists the style catalog.
type Styles struct {
	textSender   port.TextSender
	command      string
	styleCommand string
}

func NewStyles(textSender port.TextSender, command string, styleCommand string) *Styles {
	return &Styles{textSender: textSender, command: command, styleCommand: styleCommand}
}

func (s *Styles) GetCommand() string {
	return s.command
}

func (s *Styles) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	log.Debug().Int64("chatId", message.ChatID).Str("command", s.command).Msg("listing styles")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := s.textSender.SendMessage(ctx, message.ChatID, FormatStyles(s.styleCommand))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

// FormatStyles renders the catalog as one line per style.
func FormatStyles(styleCommand string) string {
	var sb strings.Builder

	sb.WriteString("Available styles:\n")
	for _, option := range domain.Styles() {
		fmt.Fprintf(&sb, "- %s\n", option.Name)
	}
	fmt.Fprintf(&sb, "\nSend a photo, then %s <style>.", styleCommand)

	return sb.String()
}
