package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"mural/internal/adapters/asset"
	"mural/internal/adapters/compressor"
	"mural/internal/adapters/file"
	"mural/internal/adapters/presenter"
	"mural/internal/adapters/uploader"
	"mural/internal/core/domain"
	"mural/internal/core/service"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	stylizeStyle string
	stylizeSave  bool
)

var stylizeCmd = &cobra.Command{
	Use:   "stylize <image>",
	Short: "Stylize a local image",
	Long: `Upload a local image with a style and print the URL of the result.

The style is either one of the names listed by 'mural styles' or free text
describing a custom style.

Examples:
  mural stylize --style Ghibli photo.jpg
  mural stylize --style "oil painting" --save photo.png`,
	Args: cobra.ExactArgs(1),
	RunE: runStylize,
}

func init() {
	stylizeCmd.Flags().StringVarP(&stylizeStyle, "style", "s", "", "style name or custom style text")
	stylizeCmd.Flags().BoolVar(&stylizeSave, "save", false, "download the result into a temp file")
	_ = stylizeCmd.MarkFlagRequired("style")
}

func runStylize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, mimeType, err := file.ReadLocalFile(args[0])
	if err != nil {
		return err
	}

	pipeline := service.NewPipeline(
		asset.NewAdapter(),
		compressor.NewJPEG(),
		uploader.NewMural(cfg.Mural.Endpoint, &http.Client{Timeout: cfg.Handler.Timeout}),
		service.NewPromptResolver(),
		service.NewFallback(cfg.Fallback.Delay),
		presenter.NewConsole(cmd.ErrOrStderr()),
		pipelineOptions()...,
	)

	err = pipeline.Acquire(ctx, domain.FileChooser{Data: data, MIMEType: mimeType, FileName: path.Base(args[0])})
	if err != nil {
		return err
	}
	pipeline.Wait()

	if err := pipeline.SelectStyle(ctx, stylizeStyle); err != nil {
		return err
	}

	state := pipeline.State()
	if state.DisplayURL == "" {
		return errors.New("no result to display")
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), state.DisplayURL)

	if !stylizeSave {
		return nil
	}

	result, err := file.DownloadFile(ctx, state.DisplayURL)
	if err != nil {
		return fmt.Errorf("error downloading result: %w", err)
	}

	saved, err := file.SaveTempFile(result, resultExtension(state.DisplayURL))
	if err != nil {
		return fmt.Errorf("error saving result: %w", err)
	}

	log.Info().Str("path", saved).Bool("fallback", state.Fallback).Msg("result saved")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), saved)

	return nil
}

func resultExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".png"
	}

	if ext := path.Ext(u.Path); ext != "" && len(ext) <= 5 {
		return ext
	}

	return ".png"
}
