package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	t.Run("should return the first successful result", func(t *testing.T) {
		calls := 0

		got, err := Do(t.Context(), func(attempt uint) (string, error) {
			calls++
			return "sealed", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "sealed", got)
		assert.Equal(t, 1, calls)
	})

	t.Run("should pass the attempt number to the operation", func(t *testing.T) {
		var seen []uint

		got, err := Do(t.Context(), func(attempt uint) (uint64, error) {
			seen = append(seen, attempt)
			if attempt < 2 {
				return 0, errors.New("budget exhausted")
			}
			return 64 << attempt, nil
		}, WithAttempts(5), WithDelay(time.Millisecond))

		require.NoError(t, err)
		assert.Equal(t, uint64(256), got)
		assert.Equal(t, []uint{0, 1, 2}, seen)
	})

	t.Run("should return the last error once attempts are used", func(t *testing.T) {
		calls := 0
		lastErr := errors.New("attempt 3")

		_, err := Do(t.Context(), func(attempt uint) (int, error) {
			calls++
			if attempt == 2 {
				return 0, lastErr
			}
			return 0, errors.New("earlier attempt")
		}, WithAttempts(3), WithDelay(time.Millisecond), WithMaxDelay(5*time.Millisecond))

		require.Error(t, err)
		assert.ErrorIs(t, err, lastErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("should stop on an unrecoverable error", func(t *testing.T) {
		calls := 0
		fatal := errors.New("fatal")

		_, err := Do(t.Context(), func(uint) (int, error) {
			calls++
			return 0, Unrecoverable(fatal)
		}, WithAttempts(5), WithDelay(time.Millisecond))

		assert.ErrorIs(t, err, fatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("should call the hook between attempts", func(t *testing.T) {
		var hooked []uint

		_, _ = Do(t.Context(), func(uint) (int, error) {
			return 0, errors.New("again")
		},
			WithAttempts(3),
			WithDelay(time.Millisecond),
			WithOnRetry(func(attempt uint, err error) { hooked = append(hooked, attempt) }),
		)

		require.GreaterOrEqual(t, len(hooked), 2)
		assert.Equal(t, []uint{0, 1}, hooked[:2])
	})

	t.Run("should give up when the context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		calls := 0

		_, err := Do(ctx, func(uint) (int, error) {
			calls++
			cancel()
			return 0, errors.New("interrupted")
		}, WithAttempts(10), WithDelay(time.Second))

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}
