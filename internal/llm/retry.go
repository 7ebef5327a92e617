package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxRetries is the number of extra attempts after a failed generation
const DefaultMaxRetries = 2

// DefaultRetryBaseDelay is the wait before the first retry; it doubles per attempt
const DefaultRetryBaseDelay = 2 * time.Second

// RetryClient decorates a Client with bounded retries, exponential backoff and jitter.
type RetryClient struct {
	inner      Client
	maxRetries int
	baseDelay  time.Duration
}

// NewRetryClient wraps inner. maxRetries <= 0 disables retrying.
func NewRetryClient(inner Client, maxRetries int, baseDelay time.Duration) *RetryClient {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryClient{inner: inner, maxRetries: maxRetries, baseDelay: baseDelay}
}

// GenerateContent implements Client
func (c *RetryClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.do(ctx, func() (string, error) {
		return c.inner.GenerateContent(ctx, prompt, tier)
	})
}

// GenerateJSON implements Client
func (c *RetryClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.do(ctx, func() (string, error) {
		return c.inner.GenerateJSON(ctx, prompt, tier)
	})
}

// Close implements Client
func (c *RetryClient) Close() error {
	return c.inner.Close()
}

func (c *RetryClient) do(ctx context.Context, call func() (string, error)) (string, error) {
	text, err := call()
	if err == nil || !isRetryable(err) {
		return text, err
	}

	lastErr := err
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		delay := c.backoffDelay(attempt)
		zap.S().Named("llm").Warnw("retrying after generation error",
			"attempt", attempt,
			"max_retries", c.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		text, err = call()
		if err == nil {
			return text, nil
		}
		if !isRetryable(err) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}

// backoffDelay is baseDelay * 2^(attempt-1) with ±30% jitter
func (c *RetryClient) backoffDelay(attempt int) time.Duration {
	delay := c.baseDelay << (attempt - 1)
	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

// isRetryable rejects cancellations and configuration errors; everything else is treated as transient
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return !errors.Is(err, ErrMissingAPIKey)
}
