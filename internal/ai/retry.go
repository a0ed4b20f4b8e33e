package ai

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// retryGenerator decorates a Generator with a per-call timeout and bounded
// retries with exponential backoff. Only transient vendor failures
// (429, 5xx) are retried; validation-style failures surface immediately.
type retryGenerator struct {
	inner      Generator
	timeout    time.Duration
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

func newRetryGenerator(inner Generator, timeout time.Duration, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *retryGenerator {
	return &retryGenerator{
		inner:      inner,
		timeout:    timeout,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

func (g *retryGenerator) GenerateText(ctx context.Context, prompt string, opts ...Option) (string, error) {
	call := func() (string, error) {
		callCtx := ctx
		if g.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}
		return g.inner.GenerateText(callCtx, prompt, opts...)
	}

	text, err := call()
	if err == nil || !isRetryable(err) {
		return text, err
	}

	lastErr := err
	delay := g.baseDelay
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		g.logger.Warn("retrying generation after transient provider error",
			"attempt", attempt,
			"max_retries", g.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}

		text, err = call()
		if err == nil || !isRetryable(err) {
			return text, err
		}
		lastErr = err
		delay *= 2
	}
	return "", lastErr
}

func isRetryable(err error) bool {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Retryable()
	}
	return false
}
