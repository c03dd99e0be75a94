// Package middleware provides stripe.Interceptor implementations for
// logging and for guarding which requests reach a transport.
package middleware

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	"github.com/broady/stripe"
)

// LoggingInterceptor creates an interceptor that logs requests using slog.
// It logs the start and end of each request, including duration and error status.
func LoggingInterceptor(logger *slog.Logger) stripe.Interceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, req *stripe.Request, out any, next stripe.Invoker) error {
		start := time.Now()

		logger.DebugContext(ctx, "request started",
			slog.String("method", req.Method().String()),
			slog.String("path", req.Path()),
			slog.Int("params", len(req.Values())),
		)

		err := next(ctx, req, out)
		duration := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "request failed",
				slog.String("method", req.Method().String()),
				slog.String("path", req.Path()),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		} else {
			attrs := []any{
				slog.String("method", req.Method().String()),
				slog.String("path", req.Path()),
				slog.Duration("duration", duration),
			}
			if id := objectID(out); id != "" {
				attrs = append(attrs, slog.String("id", id))
			}
			logger.InfoContext(ctx, "request completed", attrs...)
		}

		return err
	}
}

// objectID returns the id of the object out points to, if it has one.
func objectID(out any) string {
	rv := reflect.ValueOf(out)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		if obj, ok := rv.Interface().(stripe.Object); ok {
			return obj.ObjectID()
		}
		rv = rv.Elem()
	}
	return ""
}
