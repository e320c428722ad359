// Package chflow wraps channel sends and receives so they give up when a
// context is done.
package chflow

import (
	"context"
	"errors"
)

// ErrClosed is returned by Receive when the channel was closed and drained.
var ErrClosed = errors.New("channel closed")

// Receive waits for a value on ch. It returns ctx.Err() if the context ends
// first and ErrClosed if ch is closed.
func Receive[T any](ctx context.Context, ch <-chan T) (T, error) {
	var zero T

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case data, ok := <-ch:
		if !ok {
			return zero, ErrClosed
		}
		return data, nil
	}
}

// Send delivers data on ch unless the context ends first, in which case
// ctx.Err() is returned.
func Send[T any](ctx context.Context, ch chan<- T, data T) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case ch <- data:
		return nil
	}
}
