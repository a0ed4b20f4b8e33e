package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ymgta/jobdraft-api/internal/models"
)

// Factory resolves a stored AIProvider row and builds the matching vendor
// binding, wrapped with the timeout/retry decorator.
type Factory struct {
	db         *gorm.DB
	logger     *slog.Logger
	timeout    time.Duration
	maxRetries int
	baseDelay  time.Duration
}

// NewFactory creates a Factory over the shared database handle.
func NewFactory(db *gorm.DB, logger *slog.Logger, timeout time.Duration, maxRetries int, baseDelay time.Duration) *Factory {
	return &Factory{db: db, logger: logger, timeout: timeout, maxRetries: maxRetries, baseDelay: baseDelay}
}

// ForProvider builds a Generator for the given provider id, or for the
// global default provider when the id is empty.
func (f *Factory) ForProvider(ctx context.Context, providerID string) (Generator, error) {
	var provider models.AIProvider
	var err error
	if providerID != "" {
		err = f.db.WithContext(ctx).First(&provider, "id = ?", providerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NotFound("AI provider not found")
		}
	} else {
		err = f.db.WithContext(ctx).First(&provider, "is_default = ?", true).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoProviderConfigured
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load AI provider: %w", err)
	}

	var gen Generator
	switch strings.ToLower(provider.Provider) {
	case "openai":
		gen = newOpenAIGenerator(&provider)
	case "anthropic":
		gen = newAnthropicGenerator(&provider)
	case "gemini":
		if provider.BaseURL != "" {
			f.logger.Warn("baseUrl override is not supported for gemini providers, using the default endpoint",
				"provider", provider.Name)
		}
		gen, err = newGeminiGenerator(ctx, &provider)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider.Provider)
	}

	return newRetryGenerator(gen, f.timeout, f.maxRetries, f.baseDelay, f.logger), nil
}
