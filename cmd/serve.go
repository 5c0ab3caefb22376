package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mural/internal/adapters/asset"
	"mural/internal/adapters/compressor"
	"mural/internal/adapters/expander"
	"mural/internal/adapters/handler"
	"mural/internal/adapters/presenter"
	"mural/internal/adapters/sender"
	"mural/internal/adapters/uploader"
	"mural/internal/core/domain/command"
	"mural/internal/core/port"
	"mural/internal/core/service"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot",
	Long: `Run the Telegram bot. Send it a photo, then /style <name>, or send the photo
with the command as caption. /styles lists the catalog.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	log.Info().Msg("starting mural bot...")

	if cfg.Telegram.BotToken == "" {
		return errors.New("telegram.bot_token is not configured")
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var updates *handler.Update
	b, err := bot.New(cfg.Telegram.BotToken, bot.WithDefaultHandler(
		func(ctx context.Context, b *bot.Bot, update *models.Update) {
			updates.Handle(ctx, b, update)
		}))
	if err != nil {
		log.Error().Err(err).Msg("failed initializing telegram bot")
		return err
	}

	s := sender.NewTelegram(b)

	auth, err := service.NewAuthorizer(s)
	if err != nil {
		log.Error().Err(err).Msg("failed initializing authorizer")
		return err
	}
	track := service.NewUsageTracker(ctx, s)

	assets := asset.NewAdapter()
	jpeg := compressor.NewJPEG()
	mural := uploader.NewMural(cfg.Mural.Endpoint, &http.Client{Timeout: cfg.Handler.Timeout})
	prompts := service.NewPromptResolver()
	fallback := service.NewFallback(cfg.Fallback.Delay)
	opts := pipelineOptions()

	sessions := handler.NewSessions(func(chatID int64) port.Pipeline {
		return service.NewPipeline(assets, jpeg, mural, prompts, fallback,
			presenter.NewTelegram(chatID, s, s), opts...)
	})

	commandRegistry := &command.Registry{}
	commandRegistry.Register(command.NewStyle(sessions, s, auth, track, "/style"))
	commandRegistry.Register(command.NewStyles(s, "/styles", "/style"))
	commandRegistry.Register(command.NewStyles(s, "/start", "/style"))

	updates = handler.NewUpdate(b, sessions, commandRegistry, cfg.Handler.Timeout)

	log.Info().Strs("commands", commandRegistry.ListCommands()).Msg("bot listening")
	b.Start(ctx)

	return nil
}

func pipelineOptions() []service.PipelineOption {
	opts := []service.PipelineOption{service.WithCompressionLimits(cfg.Mural.Limits)}

	if cfg.OpenRouter.APIKey != "" {
		log.Info().Str("model", cfg.OpenRouter.Model).Msg("custom styles expanded with openrouter")
		opts = append(opts, service.WithPromptExpander(
			expander.NewOpenRouter(cfg.OpenRouter.APIKey, cfg.OpenRouter.Model)))
	}

	return opts
}
