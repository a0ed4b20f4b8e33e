// Package ai adapts the configured LLM vendors behind one text-generation
// capability. Vendor selection, credentials and tuning parameters come from
// the stored AIProvider rows; the rest of the system only sees Generator.
package ai

import (
	"context"
	"errors"
	"fmt"
)

// systemInstruction is the fixed system turn sent with every request,
// shared by all vendor bindings.
const systemInstruction = "質問内容に基づいて詳細で専門的な募集要項を作成してください。採用担当者や応募者にとって有益な情報を含めてください。"

// Generator produces text for a prompt. Implementations apply the provider
// row's temperature and max-token settings unless a call overrides them.
type Generator interface {
	GenerateText(ctx context.Context, prompt string, opts ...Option) (string, error)
}

// Option overrides generation parameters for a single call.
type Option func(*callOptions)

type callOptions struct {
	temperature float64
	maxTokens   int
}

// WithTemperature overrides the provider's configured temperature.
func WithTemperature(t float64) Option {
	return func(o *callOptions) { o.temperature = t }
}

// WithMaxTokens overrides the provider's configured output cap.
func WithMaxTokens(n int) Option {
	return func(o *callOptions) { o.maxTokens = n }
}

func resolveOptions(temperature float64, maxTokens int, opts []Option) callOptions {
	o := callOptions{temperature: temperature, maxTokens: maxTokens}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var (
	// ErrUnsupportedProvider reports a provider row whose kind has no binding.
	ErrUnsupportedProvider = errors.New("unsupported AI provider")
	// ErrNoProviderConfigured reports a generation request with no explicit
	// provider id while no default provider exists.
	ErrNoProviderConfigured = errors.New("no AI provider configured")
)

// ProviderError carries the vendor's status and message for a failed call.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.err }

// Retryable reports whether the failure is transient (rate limit or server
// error) and worth another attempt.
func (e *ProviderError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
