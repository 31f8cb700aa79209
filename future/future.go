/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package future

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrFutureTimeout is returned when the future times out
var ErrFutureTimeout = errors.New("future timeout")

// Result defines the future result
type Result[T any] interface {
	// Success returns the successful result of the future
	Success() T
	// Failure returns the error
	Failure() error
}

type result[T any] struct {
	success T
	failure error
}

// Success returns the successful result of the future
func (x *result[T]) Success() T {
	return x.success
}

// Failure returns the error
func (x *result[T]) Failure() error {
	return x.failure
}

// Future represents a value that becomes available once an asynchronous
// persistence step completes. A future completes exactly once, with either
// a value or an error.
type Future[T any] struct {
	result *result[T]
	wait   chan struct{}
	ctx    context.Context
	cancel func()
}

// New creates a Future whose body runs in its own goroutine. A panic inside
// the body is recovered and surfaces as the future's failure.
func New[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{
		wait:   make(chan struct{}),
		result: new(result[T]),
	}
	f.ctx, f.cancel = context.WithCancel(ctx)

	go func() {
		defer close(f.wait)
		defer func() {
			if r := recover(); r != nil {
				f.result.failure = fmt.Errorf("failed: %v", r)
			}
		}()

		success, err := fn(f.ctx)
		f.result.success = success
		f.result.failure = err
	}()

	return f
}

// Completed returns an already-successful future. No goroutine is spawned;
// awaiting it never suspends.
func Completed[T any](value T) *Future[T] {
	f := &Future[T]{
		wait:   make(chan struct{}),
		result: &result[T]{success: value},
	}
	close(f.wait)
	return f
}

// Failed returns an already-failed future.
func Failed[T any](err error) *Future[T] {
	f := &Future[T]{
		wait:   make(chan struct{}),
		result: &result[T]{failure: err},
	}
	close(f.wait)
	return f
}

// Await returns the result within the expected time period
func (x *Future[T]) Await(deadline time.Duration) Result[T] {
	select {
	case <-x.wait:
		return x.result
	case <-time.After(deadline):
		return &result[T]{failure: ErrFutureTimeout}
	}
}

// AwaitUninterruptible waits until the future is completed
func (x *Future[T]) AwaitUninterruptible() Result[T] {
	<-x.wait
	return x.result
}

// Get waits for completion or context cancellation and returns the outcome
// as an ordinary Go value/error pair.
func (x *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-x.wait:
		return x.result.success, x.result.failure
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Cancel cancels the future process
func (x *Future[T]) Cancel() {
	if x.cancel != nil {
		x.cancel()
	}
}
