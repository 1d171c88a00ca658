package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/crux/internal/service"
)

var (
	// ErrRateLimit marks a quota rejection from a remote API.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries is returned once every attempt has failed.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError tags an error as transient or permanent.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// backoff tracks the delay between attempts.
type backoff struct {
	opts  service.RetryOptions
	delay time.Duration
}

func newBackoff(opts service.RetryOptions) *backoff {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 100 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}
	if opts.RateLimitDelay <= 0 {
		opts.RateLimitDelay = opts.MaxDelay
	}
	if opts.Label == "" {
		opts.Label = "operation"
	}
	return &backoff{opts: opts, delay: opts.InitialDelay}
}

// next returns how long to sleep after err and advances the schedule.
func (b *backoff) next(err error) time.Duration {
	if errors.Is(err, ErrRateLimit) {
		return b.opts.RateLimitDelay
	}
	d := b.delay
	b.delay = min(time.Duration(float64(b.delay)*b.opts.Multiplier), b.opts.MaxDelay)
	return d
}

// WithRetry runs operation until it succeeds, returns a permanent error,
// or exhausts opts.MaxAttempts.
func WithRetry(ctx context.Context, operation func() error, opts service.RetryOptions) error {
	b := newBackoff(opts)

	for attempt := 1; ; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt >= b.opts.MaxAttempts {
			return fmt.Errorf("%s: %w after %d attempts: %w", b.opts.Label, ErrMaxRetries, attempt, err)
		}

		wait := b.next(err)
		slog.Warn("Retrying after transient failure",
			"operation", b.opts.Label,
			"attempt", attempt,
			"max_attempts", b.opts.MaxAttempts,
			"delay", wait,
			"error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
