package ai

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedGenerator struct {
	calls   int
	results []error
	text    string
}

func (g *scriptedGenerator) GenerateText(ctx context.Context, prompt string, opts ...Option) (string, error) {
	err := g.results[g.calls]
	g.calls++
	if err != nil {
		return "", err
	}
	return g.text, nil
}

func newTestRetryGenerator(inner Generator, maxRetries int) *retryGenerator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newRetryGenerator(inner, time.Second, maxRetries, time.Millisecond, logger)
}

func TestRetryGeneratorSucceedsFirstAttempt(t *testing.T) {
	inner := &scriptedGenerator{results: []error{nil}, text: "draft"}
	gen := newTestRetryGenerator(inner, 2)

	text, err := gen.GenerateText(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "draft", text)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryGeneratorRetriesTransientErrors(t *testing.T) {
	inner := &scriptedGenerator{
		results: []error{
			&ProviderError{Provider: "openai", StatusCode: 429, Message: "rate limited"},
			&ProviderError{Provider: "openai", StatusCode: 503, Message: "overloaded"},
			nil,
		},
		text: "draft",
	}
	gen := newTestRetryGenerator(inner, 2)

	text, err := gen.GenerateText(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "draft", text)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryGeneratorDoesNotRetryClientErrors(t *testing.T) {
	inner := &scriptedGenerator{
		results: []error{
			&ProviderError{Provider: "anthropic", StatusCode: 401, Message: "bad key"},
			nil,
		},
	}
	gen := newTestRetryGenerator(inner, 2)

	_, err := gen.GenerateText(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryGeneratorExhaustsRetries(t *testing.T) {
	transient := &ProviderError{Provider: "openai", StatusCode: 500, Message: "boom"}
	inner := &scriptedGenerator{results: []error{transient, transient, transient}}
	gen := newTestRetryGenerator(inner, 2)

	_, err := gen.GenerateText(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryGeneratorStopsOnCanceledContext(t *testing.T) {
	transient := &ProviderError{Provider: "openai", StatusCode: 500, Message: "boom"}
	inner := &scriptedGenerator{results: []error{transient, transient, transient}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gen := newRetryGenerator(inner, time.Second, 2, time.Minute, logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := gen.GenerateText(ctx, "prompt")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 10*time.Second)
	assert.Equal(t, 1, inner.calls)
}

func TestProviderErrorRetryable(t *testing.T) {
	assert.True(t, (&ProviderError{StatusCode: 429}).Retryable())
	assert.True(t, (&ProviderError{StatusCode: 500}).Retryable())
	assert.True(t, (&ProviderError{StatusCode: 503}).Retryable())
	assert.False(t, (&ProviderError{StatusCode: 400}).Retryable())
	assert.False(t, (&ProviderError{StatusCode: 401}).Retryable())
	assert.False(t, (&ProviderError{}).Retryable())
}
