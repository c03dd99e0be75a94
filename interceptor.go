package stripe

import (
	"context"
)

// Invoker represents the next step in an interceptor chain.
// It is passed to [Interceptor] functions to invoke the next interceptor
// or the underlying transport.
type Invoker func(ctx context.Context, req *Request, out any) error

// Interceptor is a hook that wraps request execution.
//
//	func timing(ctx context.Context, req *stripe.Request, out any, next stripe.Invoker) error {
//	    start := time.Now()
//	    err := next(ctx, req, out)
//	    log.Printf("%s took %v", req, time.Since(start))
//	    return err
//	}
//
// Interceptors can:
//   - Inspect the request before calling next
//   - Inspect out after calling next
//   - Short-circuit by returning an error without calling next
//   - Add values to context using context.WithValue
//
// Requests are immutable; use [Request.WithParam] to send a modified copy.
type Interceptor func(ctx context.Context, req *Request, out any, next Invoker) error

// Intercept wraps t so every request passes through interceptors.
// The first interceptor is the outer-most one (runs first).
func Intercept(t Transport, interceptors ...Interceptor) Transport {
	chain := chainInterceptors(interceptors)
	if chain == nil {
		return t
	}
	return TransportFunc(func(ctx context.Context, req *Request, out any) error {
		return chain(ctx, req, out, t.Execute)
	})
}

// chainInterceptors combines multiple interceptors into a single one.
// The first interceptor in the slice is the outer-most one (runs first).
func chainInterceptors(interceptors []Interceptor) Interceptor {
	if len(interceptors) == 0 {
		return nil
	}
	if len(interceptors) == 1 {
		return interceptors[0]
	}
	return func(ctx context.Context, req *Request, out any, next Invoker) error {
		// Chain: i[0] -> i[1] -> ... -> next
		chain := next
		for i := len(interceptors) - 1; i >= 0; i-- {
			current := interceptors[i]
			inner := chain
			chain = func(ctx context.Context, req *Request, out any) error {
				return current(ctx, req, out, inner)
			}
		}
		return chain(ctx, req, out)
	}
}
