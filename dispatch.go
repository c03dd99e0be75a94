package stripe

import "context"

// Send starts req on t and returns its pending result.
// A request that failed to encode resolves immediately with that error and
// t is not called.
func Send[T any](ctx context.Context, t AsyncTransport, req *Request) *Future[T] {
	if err := req.Err(); err != nil {
		var zero T
		return resolvedFuture(zero, err)
	}
	out := new(T)
	return awaitFuture(t.ExecuteAsync(ctx, req, out), out)
}

// SendBlocking executes req on t and decodes the response into a T.
// A request that failed to encode returns that error and t is not called.
// Errors from t are returned unchanged.
func SendBlocking[T any](ctx context.Context, t Transport, req *Request) (T, error) {
	var out T
	if err := req.Err(); err != nil {
		return out, err
	}
	if err := t.Execute(ctx, req, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
