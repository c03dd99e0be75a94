// Package stripetest provides test doubles for code that talks to the API:
// a scripted in-process Transport and an in-memory fake API Server.
package stripetest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/broady/stripe"
)

// ErrNoResponse is returned by Transport when its script is exhausted.
var ErrNoResponse = errors.New("stripetest: no scripted response left")

type scripted struct {
	body []byte
	err  error
}

// Transport replies to requests with scripted responses in order and
// records every request it receives. It implements both stripe.Transport
// and stripe.AsyncTransport and is safe for concurrent use.
type Transport struct {
	mu        sync.Mutex
	responses []scripted
	requests  []*stripe.Request
}

// NewTransport returns a Transport with an empty script.
func NewTransport() *Transport {
	return &Transport{}
}

// Respond queues a successful response. body may be a string or []byte
// holding JSON, or any value that is marshaled to JSON.
func (t *Transport) Respond(body any) *Transport {
	var b []byte
	switch v := body.(type) {
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		var err error
		b, err = json.Marshal(v)
		if err != nil {
			panic(fmt.Sprintf("stripetest: marshal response: %v", err))
		}
	}
	t.mu.Lock()
	t.responses = append(t.responses, scripted{body: b})
	t.mu.Unlock()
	return t
}

// Fail queues an error. It is returned unchanged.
func (t *Transport) Fail(err error) *Transport {
	t.mu.Lock()
	t.responses = append(t.responses, scripted{err: err})
	t.mu.Unlock()
	return t
}

func (t *Transport) Execute(ctx context.Context, req *stripe.Request, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	t.requests = append(t.requests, req)
	if len(t.responses) == 0 {
		t.mu.Unlock()
		return ErrNoResponse
	}
	r := t.responses[0]
	t.responses = t.responses[1:]
	t.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(r.body, out)
}

func (t *Transport) ExecuteAsync(ctx context.Context, req *stripe.Request, out any) <-chan error {
	errc := make(chan error, 1)
	go func() {
		errc <- t.Execute(ctx, req, out)
	}()
	return errc
}

// Requests returns the requests received so far, oldest first.
func (t *Transport) Requests() []*stripe.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*stripe.Request, len(t.requests))
	copy(out, t.requests)
	return out
}

// Calls returns the number of requests received.
func (t *Transport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

// Last returns the most recent request, or nil.
func (t *Transport) Last() *stripe.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return nil
	}
	return t.requests[len(t.requests)-1]
}

// Pending returns the number of scripted responses not yet consumed.
func (t *Transport) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.responses)
}

// Page builds a list envelope for use with Respond.
func Page[T any](url string, hasMore bool, items ...T) *stripe.List[T] {
	if items == nil {
		items = []T{}
	}
	return &stripe.List[T]{Object: "list", Data: items, HasMore: hasMore, URL: url}
}
