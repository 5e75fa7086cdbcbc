package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toytopia/toystore/pkg/retry"
)

var errTemporary = errors.New("temporary failure")

func quickConfig(maxAttempts int) retry.RetryConfig {
	return retry.RetryConfig{
		MaxAttempts: maxAttempts,
		Backoff:     retry.LinearBackoff(time.Millisecond),
	}
}

func TestDo(t *testing.T) {
	t.Run("SucceedsFirstAttempt", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), quickConfig(3), func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("RetriesUntilSuccess", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), quickConfig(5), func() error {
			calls++
			if calls < 3 {
				return errTemporary
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), quickConfig(3), func() error {
			calls++
			return errTemporary
		})
		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 3, calls)
	})

	t.Run("NonRetryableStopsEarly", func(t *testing.T) {
		fatal := errors.New("fatal")
		cfg := quickConfig(5)
		cfg.ShouldRetry = func(err error) bool {
			return !errors.Is(err, fatal)
		}

		calls := 0
		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			return fatal
		})
		assert.ErrorIs(t, err, fatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		calls := 0
		err := retry.Do(ctx, quickConfig(3), func() error {
			calls++
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls)
	})
}

func TestDoWithResult(t *testing.T) {
	t.Run("ReturnsResult", func(t *testing.T) {
		got, err := retry.DoWithResult(
			t.Context(), quickConfig(3),
			func() (string, error) { return "value", nil },
		)
		require.NoError(t, err)
		assert.Equal(t, "value", got)
	})

	t.Run("ResultFromNonRetryableError", func(t *testing.T) {
		fatal := errors.New("fatal")
		cfg := quickConfig(3)
		cfg.ShouldRetry = func(error) bool { return false }

		got, err := retry.DoWithResult(
			t.Context(), cfg,
			func() (int, error) { return 42, fatal },
		)
		assert.ErrorIs(t, err, fatal)
		assert.Equal(t, 42, got)
	})
}
