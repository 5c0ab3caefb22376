package config

import (
	"errors"
	"fmt"
	"mural/internal/adapters/uploader"
	"mural/internal/core/domain"
	"mural/internal/core/service"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Mural      MuralConfig
	Fallback   FallbackConfig
	Handler    HandlerConfig
	Telegram   TelegramConfig
	OpenRouter OpenRouterConfig
}

type AppConfig struct {
	LogLevel zerolog.Level
}

type MuralConfig struct {
	Endpoint string
	Limits   domain.CompressionLimits
}

type FallbackConfig struct {
	Delay time.Duration
}

type HandlerConfig struct {
	Timeout time.Duration
}

type TelegramConfig struct {
	BotToken string
}

type OpenRouterConfig struct {
	APIKey string
	Model  string
}

// Load reads config.toml from the given directories when present, applies MURAL_* environment overrides
// and falls back to defaults for everything else.
func Load(paths ...string) (*Config, error) {
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("mural.endpoint", uploader.DefaultEndpoint)
	viper.SetDefault("mural.max_size_bytes", domain.DefaultMaxSizeBytes)
	viper.SetDefault("mural.max_dimension", domain.DefaultMaxDimension)
	viper.SetDefault("fallback.delay", service.DefaultFallbackDelay.String())
	viper.SetDefault("handler.timeout", "2m")
	viper.SetDefault("openrouter.model", "openai/gpt-4o-mini")
	viper.SetDefault("telegram.daily_submission_limit", 0)

	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	for _, p := range paths {
		viper.AddConfigPath(p)
	}

	viper.SetEnvPrefix("MURAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if len(paths) > 0 {
		err := viper.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		if err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	fallbackDelay, err := time.ParseDuration(viper.GetString("fallback.delay"))
	if err != nil {
		return nil, fmt.Errorf("invalid fallback delay in config: %w", err)
	}

	handlerTimeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid timeout for handler in config: %w", err)
	}

	limits := domain.CompressionLimits{
		MaxSizeBytes: viper.GetInt64("mural.max_size_bytes"),
		MaxDimension: viper.GetInt("mural.max_dimension"),
	}
	if limits.MaxSizeBytes <= 0 || limits.MaxDimension <= 0 {
		return nil, errors.New("compression limits must be positive")
	}

	return &Config{
		App:      AppConfig{LogLevel: parseLogLevel(viper.GetString("app.log_level"))},
		Mural:    MuralConfig{Endpoint: viper.GetString("mural.endpoint"), Limits: limits},
		Fallback: FallbackConfig{Delay: fallbackDelay},
		Handler:  HandlerConfig{Timeout: handlerTimeout},
		Telegram: TelegramConfig{BotToken: viper.GetString("telegram.bot_token")},
		OpenRouter: OpenRouterConfig{
			APIKey: viper.GetString("openrouter.api_key"),
			Model:  viper.GetString("openrouter.model"),
		},
	}, nil
}

func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
