package cmd

import (
	"os"

	"mural/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "mural",
	Short: "Turn photos into stylized images",
	Long: `mural sends a photo together with a style to the Mural image editing service
and shows the stylized result. When the service cannot be reached a placeholder
for the chosen style is shown instead.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-dir", ".", "directory containing config.toml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stylizeCmd)
	rootCmd.AddCommand(stylesCmd)
}

func initializeApp(cmd *cobra.Command, _ []string) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})

	c, err := config.Load(configPath)
	if err != nil {
		log.Error().Err(err).Msg("could not load config")
		return err
	}
	cfg = c

	zerolog.SetGlobalLevel(cfg.App.LogLevel)

	return nil
}
