package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// item is a minimal listable resource.
type item struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

func (i *item) ObjectID() string { return i.ID }

type scriptedResponse struct {
	body string
	err  error
}

// scriptedTransport replies with canned JSON bodies in order and records
// every request it sees.
type scriptedTransport struct {
	mu        sync.Mutex
	responses []scriptedResponse
	calls     []*Request
}

var errScriptExhausted = errors.New("scripted transport: no response left")

func newScripted(responses ...scriptedResponse) *scriptedTransport {
	return &scriptedTransport{responses: responses}
}

func (s *scriptedTransport) Execute(ctx context.Context, req *Request, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	if len(s.responses) == 0 {
		return errScriptExhausted
	}
	r := s.responses[0]
	s.responses = s.responses[1:]
	if r.err != nil {
		return r.err
	}
	return json.Unmarshal([]byte(r.body), out)
}

func (s *scriptedTransport) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *scriptedTransport) call(i int) *Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[i]
}

func ok(body string) scriptedResponse { return scriptedResponse{body: body} }

func fail(err error) scriptedResponse { return scriptedResponse{err: err} }

func ids(items []*item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
