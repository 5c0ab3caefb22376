package port

import (
	"context"
	"mural/internal/core/domain"
)

type AssetAcquirer interface {
	// Acquire normalizes a platform selection into an ImageAsset, rejecting unsupported formats.
	Acquire(ctx context.Context, source domain.AssetSource) (domain.ImageAsset, error)
	// ProbeDimensions decodes the asset header in the background and delivers exactly one result.
	ProbeDimensions(ctx context.Context, asset domain.ImageAsset) <-chan domain.ProbeResult
}

type Compressor interface {
	// MaybeCompress downscales and re-encodes an asset above the size limit. It never fails; on error the
	// original asset is returned.
	MaybeCompress(ctx context.Context, asset domain.ImageAsset, limits domain.CompressionLimits) domain.ImageAsset
}

type Uploader interface {
	// Submit sends the asset and prompt to the stylization service and returns the result URL. Failures are
	// reported as *domain.UploadError.
	Submit(ctx context.Context, asset domain.ImageAsset, prompt string) (string, error)
}

type PromptResolver interface {
	Resolve(style string) string
}

type PromptExpander interface {
	// Expand turns a custom style name into a full instruction for the stylization service.
	Expand(ctx context.Context, style string) (string, error)
}

type FallbackSimulator interface {
	Simulate(ctx context.Context, style string) domain.UploadOutcome
}

type Presenter interface {
	// Notify shows user-facing text for validation, network and server errors as well as successes.
	Notify(ctx context.Context, notice domain.Notice)
	// Render publishes the pipeline state after a transition.
	Render(ctx context.Context, state domain.PipelineState)
}

type Pipeline interface {
	Acquire(ctx context.Context, source domain.AssetSource) error
	SelectStyle(ctx context.Context, style string) error
	State() domain.PipelineState
}

type Sessions interface {
	// Session returns the pipeline owned by a chat, creating it on first use.
	Session(chatID int64) Pipeline
}
