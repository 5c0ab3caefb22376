package presenter

import (
	"context"
	"fmt"
	"io"
	"mural/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// Console writes notices to a terminal and logs state transitions.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Notify(_ context.Context, notice domain.Notice) {
	_, _ = fmt.Fprintf(c.out, "[%s] %s\n", notice.Level, notice)
}

func (c *Console) Render(_ context.Context, state domain.PipelineState) {
	e := log.Debug().
		Str("phase", string(state.Phase)).
		Bool("inFlight", state.InFlight).
		Str("style", state.SelectedStyle).
		Str("displayURL", state.DisplayURL)

	if state.SourceAsset != nil {
		e = e.Str("fileName", state.SourceAsset.FileName).
			Int("width", state.SourceAsset.Width).
			Int("height", state.SourceAsset.Height)
	}

	e.Msg("pipeline state")
}
