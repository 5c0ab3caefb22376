package domain

type SourceKind string

const (
	SourceCamera      SourceKind = "camera"
	SourceGallery     SourceKind = "gallery"
	SourceFileChooser SourceKind = "file_chooser"
)

// AssetSource is a platform image-selection result. The set of implementations is closed.
type AssetSource interface {
	Kind() SourceKind
}

// PickerResult is what a camera or gallery picker hands back, dimensions included.
type PickerResult struct {
	Data      []byte
	MIMEType  string
	FileName  string
	Width     int
	Height    int
	Cancelled bool
}

type Camera struct {
	PickerResult
}

func (Camera) Kind() SourceKind { return SourceCamera }

type Gallery struct {
	PickerResult
}

func (Gallery) Kind() SourceKind { return SourceGallery }

// FileChooser is a raw file selection. It carries no dimensions; they are probed later.
type FileChooser struct {
	Data     []byte
	MIMEType string
	FileName string
}

func (FileChooser) Kind() SourceKind { return SourceFileChooser }
