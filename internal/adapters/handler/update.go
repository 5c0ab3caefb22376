package handler

import (
	"context"
	"fmt"
	"mural/internal/adapters/file"
	"mural/internal/core/domain"
	"mural/internal/core/port"
	"path"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// FileFetcher resolves Telegram file ids into download links.
type FileFetcher interface {
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

// Update routes incoming messages: images become the chat's current asset, commands go through the
// registry. A photo caption holding a command runs after the photo has been acquired.
type Update struct {
	files           FileFetcher
	sessions        port.Sessions
	commandRegistry port.CommandRegistry
	timeout         time.Duration
	download        func(ctx context.Context, url string) ([]byte, error)
}

func NewUpdate(files FileFetcher, sessions port.Sessions, commandRegistry port.CommandRegistry,
	timeout time.Duration) *Update {
	return &Update{
		files:           files,
		sessions:        sessions,
		commandRegistry: commandRegistry,
		timeout:         timeout,
		download:        file.DownloadFile,
	}
}

func (u *Update) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	msg := update.Message
	text := msg.Text
	if len(msg.Photo) > 0 || msg.Document != nil {
		text = msg.Caption
	}

	message := &domain.Message{
		ID:       msg.ID,
		ChatID:   msg.Chat.ID,
		Username: getUserNameFromMessage(msg.From),
		Text:     text,
	}

	l := log.With().Int("messageId", msg.ID).Int64("chatId", msg.Chat.ID).Logger()

	go func() {
		if len(msg.Photo) > 0 || msg.Document != nil {
			if err := u.acquire(ctx, msg); err != nil {
				l.Debug().Err(err).Msg("image not acquired")
				return
			}
		}

		if !strings.HasPrefix(text, "/") {
			return
		}

		cmd := domain.ParseCommand(text)
		commandHandler, err := u.commandRegistry.Get(cmd)
		if err != nil {
			l.Debug().Str("command", cmd).Msg("no handler for command")
			return
		}

		l.Debug().Str("command", cmd).Msg("received command")

		if err := commandHandler.Respond(ctx, u.timeout, message); err != nil {
			l.Err(err).Str("command", cmd).Msg("failed to respond to command")
		}
	}()
}

func (u *Update) acquire(ctx context.Context, msg *models.Message) error {
	source, err := u.source(ctx, msg)
	if err != nil {
		log.Error().Err(err).Int64("chatId", msg.Chat.ID).Msg("failed to fetch image from telegram")
		return err
	}

	return u.sessions.Session(msg.Chat.ID).Acquire(ctx, source)
}

func (u *Update) source(ctx context.Context, msg *models.Message) (domain.AssetSource, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if len(msg.Photo) > 0 {
		photo := findFittingImage(msg.Photo, domain.DefaultMaxDimension)

		data, filePath, err := u.fetch(ctx, photo.FileID)
		if err != nil {
			return nil, err
		}

		return domain.Gallery{PickerResult: domain.PickerResult{
			Data:     data,
			MIMEType: file.DetectMIMEType(filePath, data),
			FileName: path.Base(filePath),
			Width:    photo.Width,
			Height:   photo.Height,
		}}, nil
	}

	data, filePath, err := u.fetch(ctx, msg.Document.FileID)
	if err != nil {
		return nil, err
	}

	name := msg.Document.FileName
	if name == "" {
		name = path.Base(filePath)
	}

	mimeType := msg.Document.MimeType
	if mimeType == "" {
		mimeType = file.DetectMIMEType(name, data)
	}

	return domain.FileChooser{Data: data, MIMEType: mimeType, FileName: name}, nil
}

func (u *Update) fetch(ctx context.Context, fileID string) ([]byte, string, error) {
	f, err := u.files.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, "", fmt.Errorf("error getting file from telegram api: %w", err)
	}

	data, err := u.download(ctx, u.files.FileDownloadLink(f))
	if err != nil {
		return nil, "", fmt.Errorf("error downloading file: %w", err)
	}

	return data, f.FilePath, nil
}

// findFittingImage returns the smallest photo size whose longer side reaches minSide, or the largest one.
func findFittingImage(photos []models.PhotoSize, minSide int) models.PhotoSize {
	for _, photo := range photos {
		if max(photo.Width, photo.Height) >= minSide {
			return photo
		}
	}

	return photos[len(photos)-1]
}

func getUserNameFromMessage(user *models.User) string {
	if user == nil {
		return ""
	}

	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
