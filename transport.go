package stripe

import (
	"context"
	"errors"
)

// ErrNoResult is returned by a [Future] whose transport closed its result
// channel without delivering a value.
var ErrNoResult = errors.New("stripe: transport delivered no result")

// Transport executes requests and blocks until the response is decoded.
//
// Execute must honor the request's method, path and placement, and decode a
// successful response body into out, which is always a non-nil pointer.
// Errors are returned to callers unchanged.
type Transport interface {
	Execute(ctx context.Context, req *Request, out any) error
}

// TransportFunc adapts a function to a Transport.
type TransportFunc func(ctx context.Context, req *Request, out any) error

func (f TransportFunc) Execute(ctx context.Context, req *Request, out any) error {
	return f(ctx, req, out)
}

// AsyncTransport starts a request without waiting for it.
//
// ExecuteAsync returns a channel that delivers exactly one value once out has
// been filled in (nil) or the request failed. The transport must not touch
// out after delivering.
type AsyncTransport interface {
	ExecuteAsync(ctx context.Context, req *Request, out any) <-chan error
}

// AsyncTransportFunc adapts a function to an AsyncTransport.
type AsyncTransportFunc func(ctx context.Context, req *Request, out any) <-chan error

func (f AsyncTransportFunc) ExecuteAsync(ctx context.Context, req *Request, out any) <-chan error {
	return f(ctx, req, out)
}

// Async runs each request of a blocking transport on its own goroutine.
func Async(t Transport) AsyncTransport {
	return AsyncTransportFunc(func(ctx context.Context, req *Request, out any) <-chan error {
		errc := make(chan error, 1)
		go func() {
			errc <- t.Execute(ctx, req, out)
		}()
		return errc
	})
}

// Future is the pending result of an asynchronous request.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func resolvedFuture[T any](val T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: val, err: err}
	close(f.done)
	return f
}

func awaitFuture[T any](errc <-chan error, out *T) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		err, ok := <-errc
		if !ok {
			err = ErrNoResult
		}
		if err != nil {
			f.err = err
			return
		}
		f.val = *out
	}()
	return f
}

// thenFuture resolves to fn applied to the outcome of f.
func thenFuture[T, U any](f *Future[T], fn func(T, error) (U, error)) *Future[U] {
	next := &Future[U]{done: make(chan struct{})}
	go func() {
		defer close(next.done)
		<-f.done
		next.val, next.err = fn(f.val, f.err)
	}()
	return next
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Wait blocks until the result is available or ctx is done. Abandoning the
// wait does not cancel the request; cancel the context passed to Send for that.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result blocks until the result is available.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.val, f.err
}
