package compressor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mural/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngAsset(t *testing.T, w, h int, byteSize int64) domain.ImageAsset {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.SetGray(x, x%h, color.Gray{Y: 200})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return domain.ImageAsset{
		Data:     buf.Bytes(),
		MIMEType: "image/png",
		FileName: "photo.png",
		ByteSize: byteSize,
		Width:    w,
		Height:   h,
	}
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		name                  string
		width, height, maxDim int
		wantWidth, wantHeight int
	}{
		{name: "landscape", width: 3000, height: 2000, maxDim: 1000, wantWidth: 1000, wantHeight: 666},
		{name: "portrait", width: 2000, height: 4000, maxDim: 1000, wantWidth: 500, wantHeight: 1000},
		{name: "only height too big", width: 800, height: 1200, maxDim: 1000, wantWidth: 666, wantHeight: 1000},
		{name: "square", width: 1500, height: 1500, maxDim: 1000, wantWidth: 1000, wantHeight: 1000},
		{name: "fits already", width: 800, height: 600, maxDim: 1000, wantWidth: 800, wantHeight: 600},
		{name: "never upscaled", width: 10, height: 10, maxDim: 1000, wantWidth: 10, wantHeight: 10},
		{name: "extreme ratio keeps a pixel", width: 5000, height: 1, maxDim: 1000, wantWidth: 1000, wantHeight: 1},
		{name: "unknown dimensions", width: 0, height: 0, maxDim: 1000, wantWidth: 0, wantHeight: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h := ScaledSize(tc.width, tc.height, tc.maxDim)
			assert.Equal(t, tc.wantWidth, w)
			assert.Equal(t, tc.wantHeight, h)
		})
	}
}

func TestJPEG_MaybeCompressUnderLimitIsUnchanged(t *testing.T) {
	c := NewJPEG()
	asset := pngAsset(t, 40, 30, 1024)

	got := c.MaybeCompress(t.Context(), asset, domain.DefaultCompressionLimits())

	assert.Equal(t, asset, got)
}

func TestJPEG_MaybeCompressDownscales(t *testing.T) {
	c := NewJPEG()
	asset := pngAsset(t, 3000, 2000, 2*1024*1024)

	got := c.MaybeCompress(t.Context(), asset, domain.CompressionLimits{
		MaxSizeBytes: domain.DefaultMaxSizeBytes,
		MaxDimension: 1000,
	})

	assert.Equal(t, "image/jpeg", got.MIMEType)
	assert.Equal(t, "photo.png", got.FileName)
	assert.Equal(t, 1000, got.Width)
	assert.Equal(t, 666, got.Height)
	assert.Equal(t, int64(len(got.Data)), got.ByteSize)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(got.Data))
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Width)
	assert.Equal(t, 666, cfg.Height)
}

func TestJPEG_MaybeCompressIsIdempotent(t *testing.T) {
	c := NewJPEG()
	limits := domain.CompressionLimits{MaxSizeBytes: 64 * 1024, MaxDimension: 200}
	asset := pngAsset(t, 600, 400, 1024*1024)

	first := c.MaybeCompress(t.Context(), asset, limits)
	require.LessOrEqual(t, first.ByteSize, limits.MaxSizeBytes)

	second := c.MaybeCompress(t.Context(), first, limits)
	assert.Equal(t, first, second)
}

func TestJPEG_MaybeCompressReencodesSmallDimensions(t *testing.T) {
	c := NewJPEG()
	asset := pngAsset(t, 300, 200, 5*1024*1024)

	got := c.MaybeCompress(t.Context(), asset, domain.DefaultCompressionLimits())

	assert.Equal(t, "image/jpeg", got.MIMEType)
	assert.Equal(t, 300, got.Width)
	assert.Equal(t, 200, got.Height)
}

func TestJPEG_MaybeCompressDecodeFailureReturnsOriginal(t *testing.T) {
	c := NewJPEG()
	asset := domain.ImageAsset{
		Data:     []byte("definitely not an image"),
		MIMEType: "image/webp",
		FileName: "broken.webp",
		ByteSize: 3 * 1024 * 1024,
	}

	got := c.MaybeCompress(t.Context(), asset, domain.DefaultCompressionLimits())

	assert.Equal(t, asset, got)
}
