package service

import (
	"context"
	"mural/internal/core/domain"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultFallbackDelay = 1500 * time.Millisecond

// Fallback produces a placeholder result when the stylization service cannot deliver one.
type Fallback struct {
	delay time.Duration
}

func NewFallback(delay time.Duration) *Fallback {
	if delay < 0 {
		delay = 0
	}
	return &Fallback{delay: delay}
}

// Simulate waits the fixed delay and returns the placeholder URL for style. The wait ignores ctx.
func (f *Fallback) Simulate(_ context.Context, style string) domain.UploadOutcome {
	log.Debug().Str("style", style).Dur("delay", f.delay).Msg("simulating result")

	time.Sleep(f.delay)

	url := domain.GenericPlaceholderURL
	if s, ok := domain.LookupStyle(style); ok {
		url = s.PlaceholderURL
	}

	return domain.UploadOutcome{ResultURL: url, Fallback: true}
}
