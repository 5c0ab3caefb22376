package asset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mural/internal/core/domain"

	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"
)

// Adapter normalizes camera, gallery and file chooser selections into ImageAssets.
type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Acquire(_ context.Context, source domain.AssetSource) (domain.ImageAsset, error) {
	var asset domain.ImageAsset

	switch s := source.(type) {
	case domain.Camera:
		if s.Cancelled {
			return domain.ImageAsset{}, domain.ErrSelectionCancelled
		}
		asset = fromPicker(s.PickerResult)
	case domain.Gallery:
		if s.Cancelled {
			return domain.ImageAsset{}, domain.ErrSelectionCancelled
		}
		asset = fromPicker(s.PickerResult)
	case domain.FileChooser:
		asset = domain.ImageAsset{
			Data:     s.Data,
			MIMEType: s.MIMEType,
			FileName: s.FileName,
			ByteSize: int64(len(s.Data)),
		}
	default:
		return domain.ImageAsset{}, fmt.Errorf("unsupported asset source %T", source)
	}

	if !domain.IsAllowedMIMEType(asset.MIMEType) {
		return domain.ImageAsset{}, fmt.Errorf("%w: %q", domain.ErrInvalidFormat, asset.MIMEType)
	}

	if len(asset.Data) == 0 {
		return domain.ImageAsset{}, fmt.Errorf("%w: empty image", domain.ErrInvalidFormat)
	}

	if asset.FileName == "" {
		asset.FileName = domain.DefaultFileName
	}

	log.Debug().
		Str("source", string(source.Kind())).
		Str("fileName", asset.FileName).
		Str("mimeType", asset.MIMEType).
		Int64("byteSize", asset.ByteSize).
		Msg("asset acquired")

	return asset, nil
}

func fromPicker(p domain.PickerResult) domain.ImageAsset {
	return domain.ImageAsset{
		Data:     p.Data,
		MIMEType: p.MIMEType,
		FileName: p.FileName,
		ByteSize: int64(len(p.Data)),
		Width:    max(p.Width, 0),
		Height:   max(p.Height, 0),
	}
}

// ProbeDimensions reads the image header on a separate goroutine. The returned channel receives exactly one
// result and is then closed.
func (a *Adapter) ProbeDimensions(ctx context.Context, asset domain.ImageAsset) <-chan domain.ProbeResult {
	results := make(chan domain.ProbeResult, 1)

	go func() {
		defer close(results)

		if err := ctx.Err(); err != nil {
			results <- domain.ProbeResult{Err: err}
			return
		}

		cfg, format, err := image.DecodeConfig(bytes.NewReader(asset.Data))
		if err != nil {
			err = fmt.Errorf("error decoding image header: %w", err)
			log.Warn().Err(err).Str("fileName", asset.FileName).Msg("could not probe image dimensions")
			results <- domain.ProbeResult{Err: err}
			return
		}

		log.Debug().
			Str("fileName", asset.FileName).
			Str("format", format).
			Int("width", cfg.Width).
			Int("height", cfg.Height).
			Msg("probed image dimensions")

		results <- domain.ProbeResult{Width: cfg.Width, Height: cfg.Height}
	}()

	return results
}
