package domain

// AllowedMIMETypes lists the image formats accepted into the pipeline.
var AllowedMIMETypes = map[string]string{
	"image/jpeg": "JPEG",
	"image/png":  "PNG",
	"image/gif":  "GIF",
	"image/webp": "WebP",
}

// IsAllowedMIMEType reports whether mimeType can enter the pipeline.
func IsAllowedMIMEType(mimeType string) bool {
	_, ok := AllowedMIMETypes[mimeType]
	return ok
}

const DefaultFileName = "image.jpg"

// ImageAsset is a single image the pipeline operates on, before or after compression.
// Width and Height are advisory and may be zero until probed.
type ImageAsset struct {
	Data     []byte
	MIMEType string
	FileName string
	ByteSize int64
	Width    int
	Height   int
}

// HasDimensions reports whether both pixel dimensions are known.
func (a ImageAsset) HasDimensions() bool {
	return a.Width > 0 && a.Height > 0
}

type ProbeResult struct {
	Width  int
	Height int
	Err    error
}

type CompressionLimits struct {
	MaxSizeBytes int64
	MaxDimension int
}

const (
	DefaultMaxSizeBytes int64 = 1536 * 1024
	DefaultMaxDimension       = 1000
	JPEGQuality               = 70
)

func DefaultCompressionLimits() CompressionLimits {
	return CompressionLimits{MaxSizeBytes: DefaultMaxSizeBytes, MaxDimension: DefaultMaxDimension}
}

// UploadOutcome is produced once per submission attempt, either by the uploader or the fallback.
type UploadOutcome struct {
	RequestID uint64
	ResultURL string
	Fallback  bool
	Err       error
}

type Phase string

const (
	Idle          Phase = "idle"
	AssetSelected Phase = "asset_selected"
	Submitting    Phase = "submitting"
	Displayed     Phase = "displayed"
)

// PipelineState is the transient per-session state owned by the pipeline.
type PipelineState struct {
	Phase         Phase
	SourceAsset   *ImageAsset
	DisplayURL    string
	SelectedStyle string
	InFlight      bool
	RequestID     uint64
	Fallback      bool
}

// Clone returns a copy that shares no mutable fields with s.
func (s PipelineState) Clone() PipelineState {
	if s.SourceAsset != nil {
		asset := *s.SourceAsset
		s.SourceAsset = &asset
	}
	return s
}
