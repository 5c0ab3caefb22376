package asset

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mural/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAdapter_Acquire(t *testing.T) {
	data := []byte("not decoded here")

	tests := []struct {
		name    string
		source  domain.AssetSource
		want    domain.ImageAsset
		wantErr error
	}{
		{
			name: "camera keeps picker dimensions",
			source: domain.Camera{PickerResult: domain.PickerResult{
				Data: data, MIMEType: "image/jpeg", FileName: "cam.jpg", Width: 4000, Height: 3000,
			}},
			want: domain.ImageAsset{Data: data, MIMEType: "image/jpeg", FileName: "cam.jpg",
				ByteSize: int64(len(data)), Width: 4000, Height: 3000},
		},
		{
			name: "gallery without file name gets default",
			source: domain.Gallery{PickerResult: domain.PickerResult{
				Data: data, MIMEType: "image/png", Width: 10, Height: 20,
			}},
			want: domain.ImageAsset{Data: data, MIMEType: "image/png", FileName: "image.jpg",
				ByteSize: int64(len(data)), Width: 10, Height: 20},
		},
		{
			name:   "file chooser starts without dimensions",
			source: domain.FileChooser{Data: data, MIMEType: "image/webp", FileName: "f.webp"},
			want: domain.ImageAsset{Data: data, MIMEType: "image/webp", FileName: "f.webp",
				ByteSize: int64(len(data))},
		},
		{
			name:    "text file is rejected",
			source:  domain.FileChooser{Data: data, MIMEType: "text/plain", FileName: "notes.txt"},
			wantErr: domain.ErrInvalidFormat,
		},
		{
			name:    "heic from camera is rejected",
			source:  domain.Camera{PickerResult: domain.PickerResult{Data: data, MIMEType: "image/heic"}},
			wantErr: domain.ErrInvalidFormat,
		},
		{
			name:    "empty payload is rejected",
			source:  domain.FileChooser{MIMEType: "image/png", FileName: "empty.png"},
			wantErr: domain.ErrInvalidFormat,
		},
		{
			name:    "cancelled picker",
			source:  domain.Gallery{PickerResult: domain.PickerResult{Cancelled: true}},
			wantErr: domain.ErrSelectionCancelled,
		},
	}

	a := NewAdapter()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := a.Acquire(t.Context(), tc.source)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, domain.ImageAsset{}, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAdapter_ProbeDimensions(t *testing.T) {
	a := NewAdapter()

	res := <-a.ProbeDimensions(t.Context(), domain.ImageAsset{Data: encodePNG(t, 37, 21), MIMEType: "image/png"})
	require.NoError(t, res.Err)
	assert.Equal(t, 37, res.Width)
	assert.Equal(t, 21, res.Height)
}

func TestAdapter_ProbeDimensionsFailure(t *testing.T) {
	a := NewAdapter()

	results := a.ProbeDimensions(t.Context(), domain.ImageAsset{Data: []byte("garbage"), MIMEType: "image/png"})
	res := <-results
	require.Error(t, res.Err)
	assert.Zero(t, res.Width)
	assert.Zero(t, res.Height)

	_, open := <-results
	assert.False(t, open, "channel is closed after the single result")
}
