// Package retry re-runs an operation with exponential backoff on top of
// avast/retry-go. The operation learns which attempt it is running, so it can
// widen its own scope between attempts.
package retry

import (
	"context"
	"time"

	retrygo "github.com/avast/retry-go/v4"
)

// OnRetryFunc is called after every failed attempt that will be retried.
// attempt is zero-based.
type OnRetryFunc func(attempt uint, err error)

type config struct {
	attempts uint          // total attempts, including the first one
	delay    time.Duration // backoff base
	maxDelay time.Duration // backoff cap
	onRetry  OnRetryFunc
}

// Option customizes Do.
type Option func(*config)

// WithAttempts sets the total number of attempts. Default: 3.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the backoff base delay. Default: 1s.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the backoff delay. Default: 5s.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithOnRetry registers a hook run between attempts.
func WithOnRetry(fn OnRetryFunc) Option {
	return func(c *config) {
		c.onRetry = fn
	}
}

// Do calls op until it succeeds, returns an Unrecoverable error, every attempt
// is used or ctx is done. On exhaustion only the last error is returned.
func Do[T any](ctx context.Context, op func(attempt uint) (T, error), opts ...Option) (T, error) {
	cfg := config{
		attempts: 3,
		delay:    time.Second,
		maxDelay: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	options := []retrygo.Option{
		retrygo.Context(ctx),
		retrygo.Attempts(cfg.attempts),
		retrygo.Delay(cfg.delay),
		retrygo.MaxDelay(cfg.maxDelay),
		retrygo.DelayType(retrygo.BackOffDelay),
		retrygo.LastErrorOnly(true),
	}
	if cfg.onRetry != nil {
		options = append(options, retrygo.OnRetry(retrygo.OnRetryFunc(cfg.onRetry)))
	}

	var attempt uint
	return retrygo.DoWithData(func() (T, error) {
		defer func() { attempt++ }()
		return op(attempt)
	}, options...)
}

// Unrecoverable wraps err so Do returns it without further attempts.
func Unrecoverable(err error) error {
	return retrygo.Unrecoverable(err)
}
