package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/broady/stripe"
)

var (
	// ErrLiveTestHelper is returned when a test-helper endpoint is called
	// with a live-mode key.
	ErrLiveTestHelper = errors.New("test helper endpoints are only available in test mode")

	// ErrDryRun is returned by DryRun in place of a response.
	ErrDryRun = errors.New("dry run: request not sent")
)

// IsLiveKey reports whether key is a live-mode secret or restricted key.
func IsLiveKey(key string) bool {
	return strings.HasPrefix(key, "sk_live_") || strings.HasPrefix(key, "rk_live_")
}

// TestHelperGuard refuses test-helper requests when apiKey is a live key,
// without calling the transport.
func TestHelperGuard(apiKey string) stripe.Interceptor {
	live := IsLiveKey(apiKey)
	return func(ctx context.Context, req *stripe.Request, out any, next stripe.Invoker) error {
		if live && req.IsTestHelper() {
			return fmt.Errorf("%s: %w", req, ErrLiveTestHelper)
		}
		return next(ctx, req, out)
	}
}

// DryRun writes each request to w and returns ErrDryRun instead of sending it.
// Requests that fail to encode report that error.
func DryRun(w io.Writer) stripe.Interceptor {
	return func(ctx context.Context, req *stripe.Request, out any, next stripe.Invoker) error {
		if err := req.Err(); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s\n", req.Method(), req.URL())
		if body := req.Body(); body != "" {
			fmt.Fprintf(w, "Content-Type: %s\n\n%s\n", req.ContentType(), body)
		}
		return ErrDryRun
	}
}
