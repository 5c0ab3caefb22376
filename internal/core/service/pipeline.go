package service

import (
	"context"
	"errors"
	"mural/internal/core/domain"
	"mural/internal/core/port"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Pipeline sequences acquisition, compression, submission and fallback for one user session and owns the
// session's PipelineState.
type Pipeline struct {
	assets     port.AssetAcquirer
	compressor port.Compressor
	uploader   port.Uploader
	prompts    port.PromptResolver
	fallback   port.FallbackSimulator
	presenter  port.Presenter
	expander   port.PromptExpander
	limits     domain.CompressionLimits
	log        zerolog.Logger

	mu        sync.Mutex
	state     domain.PipelineState
	requestID uint64
	assetSeq  uint64
	probes    sync.WaitGroup
}

type PipelineOption func(*Pipeline)

// WithPromptExpander lets custom style names be expanded into full instructions before submission.
func WithPromptExpander(expander port.PromptExpander) PipelineOption {
	return func(p *Pipeline) {
		p.expander = expander
	}
}

func WithCompressionLimits(limits domain.CompressionLimits) PipelineOption {
	return func(p *Pipeline) {
		p.limits = limits
	}
}

func NewPipeline(assets port.AssetAcquirer,
	compressor port.Compressor,
	uploader port.Uploader,
	prompts port.PromptResolver,
	fallback port.FallbackSimulator,
	presenter port.Presenter,
	opts ...PipelineOption) *Pipeline {
	session := "unknown"
	if id, err := uuid.NewV4(); err == nil {
		session = id.String()
	}

	p := &Pipeline{
		assets:     assets,
		compressor: compressor,
		uploader:   uploader,
		prompts:    prompts,
		fallback:   fallback,
		presenter:  presenter,
		limits:     domain.DefaultCompressionLimits(),
		log:        log.With().Str("session", session).Logger(),
		state:      domain.PipelineState{Phase: domain.Idle},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// State returns a copy of the current pipeline state.
func (p *Pipeline) State() domain.PipelineState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state.Clone()
}

// Wait blocks until background dimension probes have finished.
func (p *Pipeline) Wait() {
	p.probes.Wait()
}

// Acquire replaces the current asset with the one selected by source. Any submission still in flight for
// the previous asset is superseded.
func (p *Pipeline) Acquire(ctx context.Context, source domain.AssetSource) error {
	l := p.log.With().Str("source", string(source.Kind())).Logger()

	asset, err := p.assets.Acquire(ctx, source)
	if errors.Is(err, domain.ErrSelectionCancelled) {
		l.Debug().Msg("selection cancelled")
		return err
	}
	if errors.Is(err, domain.ErrInvalidFormat) {
		l.Info().Err(err).Msg("rejected asset")
		p.presenter.Notify(ctx, domain.InvalidFormatNotice())
		return err
	}
	if err != nil {
		l.Error().Err(err).Msg("failed to acquire asset")
		p.presenter.Notify(ctx, domain.Notice{Level: domain.NoticeError, Title: "Error", Text: err.Error()})
		return err
	}

	p.mu.Lock()
	p.assetSeq++
	p.requestID++
	seq := p.assetSeq
	p.state = domain.PipelineState{
		Phase:       domain.AssetSelected,
		SourceAsset: &asset,
		RequestID:   p.requestID,
	}
	state := p.state.Clone()
	p.mu.Unlock()

	l.Info().
		Str("fileName", asset.FileName).
		Str("mimeType", asset.MIMEType).
		Int64("byteSize", asset.ByteSize).
		Msg("asset selected")

	p.presenter.Render(ctx, state)

	if !asset.HasDimensions() {
		bg := context.WithoutCancel(ctx)
		p.probes.Add(1)
		go p.refineDimensions(bg, seq, p.assets.ProbeDimensions(bg, asset))
	}

	return nil
}

func (p *Pipeline) refineDimensions(ctx context.Context, seq uint64, results <-chan domain.ProbeResult) {
	defer p.probes.Done()

	res := <-results
	if res.Err != nil {
		p.log.Debug().Err(res.Err).Msg("dimensions unavailable, keeping 0x0")
		return
	}

	p.mu.Lock()
	if seq != p.assetSeq || p.state.SourceAsset == nil {
		p.mu.Unlock()
		p.log.Debug().Msg("asset replaced before probe finished")
		return
	}

	asset := *p.state.SourceAsset
	asset.Width, asset.Height = res.Width, res.Height
	p.state.SourceAsset = &asset
	state := p.state.Clone()
	p.mu.Unlock()

	p.log.Debug().Int("width", res.Width).Int("height", res.Height).Msg("asset dimensions probed")
	p.presenter.Render(ctx, state)
}

// SelectStyle submits the current asset with the given style and always ends with a display URL: the
// service result on success, a placeholder otherwise. Outcomes of superseded requests are discarded.
func (p *Pipeline) SelectStyle(ctx context.Context, style string) error {
	p.mu.Lock()
	if p.state.SourceAsset == nil {
		p.mu.Unlock()
		p.log.Info().Str("style", style).Msg("style selected without asset")
		p.presenter.Notify(ctx, domain.NoAssetNotice())
		return domain.ErrNoAssetSelected
	}

	p.requestID++
	id := p.requestID
	asset := *p.state.SourceAsset
	p.state.Phase = domain.Submitting
	p.state.InFlight = true
	p.state.SelectedStyle = style
	p.state.RequestID = id
	state := p.state.Clone()
	p.mu.Unlock()

	l := p.log.With().Uint64("requestId", id).Str("style", style).Logger()
	l.Info().Msg("handling style selection")

	p.presenter.Render(ctx, state)

	outcome := p.submit(ctx, l, id, asset, style)
	if outcome.Err != nil {
		if !p.isCurrent(id) {
			l.Debug().Msg("discarding failure of superseded request")
			return nil
		}

		p.presenter.Notify(ctx, domain.FailureNotice(outcome.Err))

		outcome = p.fallback.Simulate(ctx, style)
		outcome.RequestID = id
	}

	p.complete(ctx, l, outcome, style)

	return nil
}

func (p *Pipeline) submit(ctx context.Context, l zerolog.Logger, id uint64, asset domain.ImageAsset,
	style string) domain.UploadOutcome {
	compressed := p.compressor.MaybeCompress(ctx, asset, p.limits)
	prompt := p.resolvePrompt(ctx, l, style)

	l.Info().
		Str("fileName", compressed.FileName).
		Str("mimeType", compressed.MIMEType).
		Int64("byteSize", compressed.ByteSize).
		Str("prompt", prompt).
		Msg("submitting image")

	url, err := p.uploader.Submit(ctx, compressed, prompt)
	if err != nil {
		l.Warn().Err(err).Msg("submission failed")
		return domain.UploadOutcome{RequestID: id, Err: err}
	}

	return domain.UploadOutcome{RequestID: id, ResultURL: url}
}

func (p *Pipeline) resolvePrompt(ctx context.Context, l zerolog.Logger, style string) string {
	prompt := p.prompts.Resolve(style)
	if prompt != style || p.expander == nil {
		return prompt
	}

	expanded, err := p.expander.Expand(ctx, style)
	if err != nil || expanded == "" {
		l.Warn().Err(err).Msg("prompt expansion failed, sending style name")
		return style
	}

	return expanded
}

func (p *Pipeline) isCurrent(id uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return id == p.requestID
}

func (p *Pipeline) complete(ctx context.Context, l zerolog.Logger, outcome domain.UploadOutcome, style string) {
	p.mu.Lock()
	if outcome.RequestID != p.requestID {
		p.mu.Unlock()
		l.Debug().Str("resultURL", outcome.ResultURL).Msg("discarding outcome of superseded request")
		return
	}

	p.state.Phase = domain.Displayed
	p.state.DisplayURL = outcome.ResultURL
	p.state.Fallback = outcome.Fallback
	p.state.InFlight = false
	state := p.state.Clone()
	p.mu.Unlock()

	l.Info().Str("displayURL", outcome.ResultURL).Bool("fallback", outcome.Fallback).Msg("result displayed")

	p.presenter.Render(ctx, state)

	if outcome.Fallback {
		p.presenter.Notify(ctx, domain.DemoNotice(style))
		return
	}
	p.presenter.Notify(ctx, domain.SuccessNotice(style))
}
