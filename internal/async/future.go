// Package async turns single-fulfillment asynchronous work into values that
// sequential code can wait for.
//
// A Future is completed exactly once by the function passed to Go. Await
// blocks on a single join, so a completion that happens before Await is
// called is never missed.
package async

import (
	"context"
	"fmt"
	"sync"
)

// PanicError is returned by Await when the bridged function panicked.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("async: bridged call panicked: %v", e.Value)
}

// Future holds the eventual result of one asynchronous computation.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// complete records the result. Only the first call has any effect.
func (f *Future[T]) complete(value T, err error) bool {
	completed := false
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
		completed = true
	})
	return completed
}

// Go runs fn on its own goroutine and returns a Future for its result.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		var (
			value T
			err   error
		)
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.complete(zero, PanicError{Value: r})
				return
			}
			f.complete(value, err)
		}()
		value, err = fn(ctx)
	}()
	return f
}

// Await blocks until the future completes and returns its result.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// Bridge runs fn and waits for it. Nothing else is started by the caller
// until the result is back, which keeps bridged steps strictly sequential.
func Bridge[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	return Go(ctx, fn).Await()
}
