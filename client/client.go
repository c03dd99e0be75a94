package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/broady/stripe"
)

// UserAgent identifies this package to the API.
const UserAgent = "broady-stripe-go/1"

var (
	_ stripe.Transport      = (*Client)(nil)
	_ stripe.AsyncTransport = (*Client)(nil)
)

type idempotencyKey struct{}

// WithIdempotencyKey makes the POST executed with ctx use key instead of a
// generated one.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKey{}, key)
}

// Client sends requests to the API over HTTP. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *slog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// New returns a Client for a validated config. A nil logger discards logs.
func New(config Config, logger *slog.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
		logger:     logger.With("component", "stripe-client"),
		sleep:      sleepCtx,
	}, nil
}

// Config returns the client's settings.
func (c *Client) Config() Config { return c.config }

// Execute sends req, retrying transient failures, and decodes a successful
// response into out. Failed responses are returned as *APIError.
func (c *Client) Execute(ctx context.Context, req *stripe.Request, out any) error {
	if err := req.Err(); err != nil {
		return err
	}
	logger := c.logger.With("method", req.Method().String(), "path", req.Path())

	var key string
	if req.Method() == stripe.MethodPost {
		key, _ = ctx.Value(idempotencyKey{}).(string)
		if key == "" {
			key = uuid.NewString()
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.config.RetryDelay << (attempt - 1)
			logger.Debug("retrying after delay", "attempt", attempt, "delay", delay)
			if err := c.sleep(ctx, delay); err != nil {
				return err
			}
		}

		err := c.doRequest(ctx, req, key, out)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		lastErr = err
		if !retryable(err) {
			logger.Debug("request failed", "error", err)
			return err
		}
		logger.Debug("request failed, will retry", "error", err, "attempt", attempt)
	}
	logger.Warn("retries exhausted", "attempts", c.config.MaxRetries+1, "error", lastErr)
	return lastErr
}

// ExecuteAsync runs Execute on its own goroutine.
func (c *Client) ExecuteAsync(ctx context.Context, req *stripe.Request, out any) <-chan error {
	errc := make(chan error, 1)
	go func() {
		errc <- c.Execute(ctx, req, out)
	}()
	return errc
}

// doRequest performs a single attempt.
func (c *Client) doRequest(ctx context.Context, req *stripe.Request, key string, out any) error {
	var body io.Reader
	if b := req.Body(); b != "" {
		body = bytes.NewBufferString(b)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method().String(), c.config.BaseURL+req.URL(), body)
	if err != nil {
		return fmt.Errorf("stripe: creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", UserAgent)
	if ct := req.ContentType(); ct != "" {
		httpReq.Header.Set("Content-Type", ct)
	}
	if c.config.APIVersion != "" {
		httpReq.Header.Set("Stripe-Version", c.config.APIVersion)
	}
	if c.config.Account != "" {
		httpReq.Header.Set("Stripe-Account", c.config.Account)
	}
	if key != "" {
		httpReq.Header.Set("Idempotency-Key", key)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &networkError{err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return &networkError{err: fmt.Errorf("reading response: %w", err)}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return decodeAPIError(httpResp.StatusCode, httpResp.Header.Get("Request-Id"), respBody)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("stripe: decoding %s response: %w", req, err)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
