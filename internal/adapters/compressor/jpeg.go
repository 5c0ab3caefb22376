package compressor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"mural/internal/core/domain"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const jpegMIMEType = "image/jpeg"

// JPEG downscales oversized assets and re-encodes them as JPEG.
type JPEG struct {
	quality int
	scaler  draw.Scaler
}

func NewJPEG() *JPEG {
	return &JPEG{quality: domain.JPEGQuality, scaler: draw.CatmullRom}
}

// MaybeCompress returns the asset unchanged when it is within limits.MaxSizeBytes. Larger assets are scaled
// to fit limits.MaxDimension (never upscaled) and re-encoded. Compression is best effort: any failure
// returns the original asset.
func (c *JPEG) MaybeCompress(ctx context.Context, asset domain.ImageAsset,
	limits domain.CompressionLimits) domain.ImageAsset {
	if asset.ByteSize <= limits.MaxSizeBytes {
		return asset
	}

	l := log.With().
		Str("fileName", asset.FileName).
		Str("mimeType", asset.MIMEType).
		Int64("byteSize", asset.ByteSize).
		Logger()

	if err := ctx.Err(); err != nil {
		l.Warn().Err(err).Msg("skipping compression")
		return asset
	}

	compressed, err := c.compress(asset, limits.MaxDimension)
	if err != nil {
		l.Warn().Err(err).Msg("compression failed, sending original image")
		return asset
	}

	l.Info().
		Int64("compressedSize", compressed.ByteSize).
		Int("width", compressed.Width).
		Int("height", compressed.Height).
		Msg("image compressed")

	return compressed
}

func (c *JPEG) compress(asset domain.ImageAsset, maxDimension int) (domain.ImageAsset, error) {
	src, _, err := image.Decode(bytes.NewReader(asset.Data))
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("error decoding image: %w", err)
	}

	bounds := src.Bounds()
	width, height := ScaledSize(bounds.Dx(), bounds.Dy(), maxDimension)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	c.scaler.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: c.quality}); err != nil {
		return domain.ImageAsset{}, fmt.Errorf("error encoding jpeg: %w", err)
	}

	return domain.ImageAsset{
		Data:     buf.Bytes(),
		MIMEType: jpegMIMEType,
		FileName: asset.FileName,
		ByteSize: int64(buf.Len()),
		Width:    width,
		Height:   height,
	}, nil
}

// ScaledSize fits width x height into a maxDimension square, preserving the aspect ratio and flooring each
// side. Images that already fit are returned as is.
func ScaledSize(width, height, maxDimension int) (int, int) {
	if maxDimension <= 0 || width <= 0 || height <= 0 {
		return width, height
	}

	if width <= maxDimension && height <= maxDimension {
		return width, height
	}

	if width >= height {
		return maxDimension, max(height*maxDimension/width, 1)
	}

	return max(width*maxDimension/height, 1), maxDimension
}
