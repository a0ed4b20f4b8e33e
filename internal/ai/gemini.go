package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/ymgta/jobdraft-api/internal/models"
)

// geminiGenerator implements Generator over the Gemini API via langchaingo.
type geminiGenerator struct {
	llm         llms.Model
	temperature float64
	maxTokens   int
}

func newGeminiGenerator(ctx context.Context, p *models.AIProvider) (*geminiGenerator, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(p.APIKey),
		googleai.WithDefaultModel(p.ModelName),
	)
	if err != nil {
		return nil, &ProviderError{Provider: "gemini", Message: fmt.Sprintf("create client: %v", err), err: err}
	}
	return &geminiGenerator{
		llm:         llm,
		temperature: p.Temperature,
		maxTokens:   p.MaxTokens,
	}, nil
}

func (g *geminiGenerator) GenerateText(ctx context.Context, prompt string, opts ...Option) (string, error) {
	o := resolveOptions(g.temperature, g.maxTokens, opts)

	// Gemini takes no separate system turn here; the instruction is
	// prepended to the single prompt.
	full := systemInstruction + "\n\n" + prompt
	text, err := llms.GenerateFromSinglePrompt(ctx, g.llm, full,
		llms.WithTemperature(o.temperature),
		llms.WithMaxTokens(o.maxTokens),
	)
	if err != nil {
		return "", &ProviderError{Provider: "gemini", Message: err.Error(), err: err}
	}
	return text, nil
}
