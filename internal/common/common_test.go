package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/Veraticus/crux/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "chatty", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, slog.LevelInfo, "json"))
	LogInfo("loaded", Fields{"rows": 3})
	LogDebug("hidden", nil)

	assert.Contains(t, buf.String(), `"msg":"loaded"`)
	assert.Contains(t, buf.String(), `"rows":3`)
	assert.NotContains(t, buf.String(), "hidden")

	assert.ErrorIs(t, SetupLogger(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}

func TestUserError(t *testing.T) {
	inner := errors.New("boom")
	err := NewUserError("could not load attendance", inner)

	assert.Equal(t, "could not load attendance: boom", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "plain", NewUserError("plain", nil).Error())
}

func TestWithRetry(t *testing.T) {
	opts := service.RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}

	t.Run("retries retryable errors", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return &RetryableError{Err: errors.New("503"), Retryable: true}
			}
			return nil
		}, opts)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on permanent errors", func(t *testing.T) {
		calls := 0
		permanent := errors.New("403")
		err := WithRetry(context.Background(), func() error {
			calls++
			return permanent
		}, opts)
		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		err := WithRetry(context.Background(), func() error {
			return &RetryableError{Err: errors.New("503"), Retryable: true}
		}, opts)
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.Contains(t, err.Error(), "after 3 attempts")
	})

	t.Run("rate limits use the rate limit delay", func(t *testing.T) {
		calls := 0
		start := time.Now()
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls == 1 {
				return fmt.Errorf("%w: quota", ErrRateLimit)
			}
			return nil
		}, service.RetryOptions{MaxAttempts: 2, RateLimitDelay: 5 * time.Millisecond, Label: "test"})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, func() error {
			return &RetryableError{Err: errors.New("503"), Retryable: true}
		}, service.RetryOptions{MaxAttempts: 5, InitialDelay: time.Second})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBackoff_Next(t *testing.T) {
	b := newBackoff(service.RetryOptions{
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     35 * time.Millisecond,
		Multiplier:   2,
	})

	transient := errors.New("503")
	assert.Equal(t, 10*time.Millisecond, b.next(transient))
	assert.Equal(t, 20*time.Millisecond, b.next(transient))
	assert.Equal(t, 35*time.Millisecond, b.next(transient))
	assert.Equal(t, 35*time.Millisecond, b.next(ErrRateLimit))
	assert.Equal(t, 35*time.Millisecond, b.next(transient))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "plain", err: errors.New("boom"), want: false},
		{name: "rate limit", err: fmt.Errorf("%w: 429", ErrRateLimit), want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "marked transient", err: &RetryableError{Err: errors.New("503"), Retryable: true}, want: true},
		{name: "explicit permanent wins", err: &RetryableError{Err: ErrRateLimit, Retryable: false}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
