package ai

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ymgta/jobdraft-api/internal/models"
)

// anthropicGenerator implements Generator over the Anthropic Messages API.
type anthropicGenerator struct {
	client      anthropic.Client
	model       string
	temperature float64
	maxTokens   int
}

func newAnthropicGenerator(p *models.AIProvider) *anthropicGenerator {
	// The SDK retries internally by default; retries here are owned by the
	// retry decorator so the SDK's are disabled.
	clientOpts := []option.RequestOption{
		option.WithAPIKey(p.APIKey),
		option.WithMaxRetries(0),
	}
	if p.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(p.BaseURL))
	}
	return &anthropicGenerator{
		client:      anthropic.NewClient(clientOpts...),
		model:       p.ModelName,
		temperature: p.Temperature,
		maxTokens:   p.MaxTokens,
	}
}

func (g *anthropicGenerator) GenerateText(ctx context.Context, prompt string, opts ...Option) (string, error) {
	o := resolveOptions(g.temperature, g.maxTokens, opts)

	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(o.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemInstruction},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(o.temperature),
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &ProviderError{Provider: "anthropic", StatusCode: apiErr.StatusCode, Message: err.Error(), err: err}
		}
		return "", &ProviderError{Provider: "anthropic", Message: err.Error(), err: err}
	}

	// First text block only; no text blocks is a successful empty result.
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			return text.Text, nil
		}
	}
	return "", nil
}
