package expander

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/revrost/go-openrouter"
	"github.com/rs/zerolog/log"
)

const systemPrompt = "You write instructions for an image stylization service. Given the name of a visual style, " +
	"answer with one sentence in Brazilian Portuguese telling the service how to transform a photo into that " +
	"style. Answer with the instruction only."

type chatClient interface {
	CreateChatCompletion(ctx context.Context,
		ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

// OpenRouter expands custom style names into full stylization prompts using a chat model.
type OpenRouter struct {
	client chatClient
	model  string
}

func NewOpenRouter(apiKey, model string) *OpenRouter {
	return &OpenRouter{
		model: model,
		client: openrouter.NewClient(
			apiKey,
			openrouter.WithXTitle("mural"),
		),
	}
}

func (o *OpenRouter) Expand(ctx context.Context, style string) (string, error) {
	style = strings.TrimSpace(style)
	if style == "" {
		return "", errors.New("empty style")
	}

	ccr := openrouter.ChatCompletionRequest{
		Model: o.model,
		Messages: []openrouter.ChatCompletionMessage{
			{
				Role:    openrouter.ChatMessageRoleSystem,
				Content: openrouter.Content{Text: systemPrompt},
			},
			{
				Role:    openrouter.ChatMessageRoleUser,
				Content: openrouter.Content{Text: style},
			},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return "", fmt.Errorf("openrouter API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned from openrouter")
	}

	prompt := strings.TrimSpace(resp.Choices[0].Message.Content.Text)
	if prompt == "" {
		return "", errors.New("empty completion returned from openrouter")
	}

	log.Debug().Str("style", style).Str("prompt", prompt).Str("model", resp.Model).Msg("expanded custom style")

	return prompt, nil
}
