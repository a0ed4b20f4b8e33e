package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ymgta/jobdraft-api/internal/models"
)

// openaiGenerator implements Generator over the OpenAI chat-completions API.
// A custom BaseURL in the provider row lets it target any OpenAI-compatible
// endpoint.
type openaiGenerator struct {
	client      *openai.Client
	model       string
	temperature float64
	maxTokens   int
}

func newOpenAIGenerator(p *models.AIProvider) *openaiGenerator {
	cfg := openai.DefaultConfig(p.APIKey)
	if p.BaseURL != "" {
		cfg.BaseURL = p.BaseURL
	}
	return &openaiGenerator{
		client:      openai.NewClientWithConfig(cfg),
		model:       p.ModelName,
		temperature: p.Temperature,
		maxTokens:   p.MaxTokens,
	}
}

func (g *openaiGenerator) GenerateText(ctx context.Context, prompt string, opts ...Option) (string, error) {
	o := resolveOptions(g.temperature, g.maxTokens, opts)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(o.temperature),
		MaxTokens:   o.maxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &ProviderError{Provider: "openai", StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, err: err}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", &ProviderError{Provider: "openai", StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error(), err: err}
		}
		return "", &ProviderError{Provider: "openai", Message: err.Error(), err: err}
	}

	// An absent first choice is a successful-but-empty result, not an error.
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
