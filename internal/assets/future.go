package assets

import (
	"context"
	"sync"
)

// Result is the outcome of a load.
type Result[T any] struct {
	Val T
	Err error
}

// Future is a single-assignment result produced by a background load.
// Only the first Resolve takes effect.
type Future[T any] struct {
	done chan struct{}
	once sync.Once
	res  Result[T]
}

// NewFuture creates an unresolved future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolve sets the result. Returns false if the future was already resolved.
func (f *Future[T]) Resolve(val T, err error) bool {
	resolved := false
	f.once.Do(func() {
		f.res = Result[T]{Val: val, Err: err}
		close(f.done)
		resolved = true
	})
	return resolved
}

// Poll returns the result without blocking. ok is false while unresolved.
func (f *Future[T]) Poll() (Result[T], bool) {
	select {
	case <-f.done:
		return f.res, true
	default:
		return Result[T]{}, false
	}
}

// Wait blocks until the future resolves or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.res.Val, f.res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed on resolution.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// LoadAsync fetches name in a goroutine, decodes it and resolves the returned future.
func LoadAsync[T any](ctx context.Context, f *Fetcher, name string, decode func([]byte) (T, error)) *Future[T] {
	fut := NewFuture[T]()
	go func() {
		data, err := f.Fetch(ctx, name)
		if err != nil {
			var zero T
			fut.Resolve(zero, err)
			return
		}
		fut.Resolve(decode(data))
	}()
	return fut
}
