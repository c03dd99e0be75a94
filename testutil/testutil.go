// Package testutil provides testing helpers for encoded request parameters
// and for HTTP handlers that speak the API's wire format.
// This package is designed to be import-cycle safe and can be used from any package.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/broady/stripe/form"
)

// RequestBuilder helps construct test HTTP requests with fluent API.
type RequestBuilder struct {
	method  string
	path    string
	body    []byte
	headers map[string]string
	query   form.Values
}

// NewRequest creates a new request builder.
func NewRequest() *RequestBuilder {
	return &RequestBuilder{
		method:  "GET",
		path:    "/",
		headers: make(map[string]string),
	}
}

// GET sets the HTTP method to GET.
func (b *RequestBuilder) GET(path string) *RequestBuilder {
	b.method = "GET"
	b.path = path
	return b
}

// POST sets the HTTP method to POST.
func (b *RequestBuilder) POST(path string) *RequestBuilder {
	b.method = "POST"
	b.path = path
	return b
}

// DELETE sets the HTTP method to DELETE.
func (b *RequestBuilder) DELETE(path string) *RequestBuilder {
	b.method = "DELETE"
	b.path = path
	return b
}

// WithForm sets the request body as a url-encoded form.
func (b *RequestBuilder) WithForm(v form.Values) *RequestBuilder {
	b.body = []byte(v.Encode())
	b.headers["Content-Type"] = "application/x-www-form-urlencoded"
	return b
}

// WithBody sets the raw request body.
func (b *RequestBuilder) WithBody(body string) *RequestBuilder {
	b.body = []byte(body)
	return b
}

// WithHeader adds a header to the request.
func (b *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	b.headers[key] = value
	return b
}

// WithBearer sets the Authorization header.
func (b *RequestBuilder) WithBearer(key string) *RequestBuilder {
	return b.WithHeader("Authorization", "Bearer "+key)
}

// WithQuery adds a query parameter. Order is preserved.
func (b *RequestBuilder) WithQuery(key, value string) *RequestBuilder {
	b.query.Add(key, value)
	return b
}

// Build creates the HTTP request and ResponseRecorder.
func (b *RequestBuilder) Build() (*http.Request, *httptest.ResponseRecorder) {
	path := b.path
	if len(b.query) > 0 {
		path += "?" + b.query.Encode()
	}

	var req *http.Request
	if len(b.body) > 0 {
		req = httptest.NewRequest(b.method, path, bytes.NewReader(b.body))
	} else {
		req = httptest.NewRequest(b.method, path, nil)
	}

	for k, v := range b.headers {
		req.Header.Set(k, v)
	}

	return req, httptest.NewRecorder()
}

// AssertStatus checks that the response has the expected status code.
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int) {
	t.Helper()
	if w.Code != expectedStatus {
		t.Errorf("expected status %d, got %d\nBody: %s", expectedStatus, w.Code, w.Body.String())
	}
}

// AssertJSON checks that the response is a JSON object equal to want once
// both are normalized. Key order and whitespace are ignored.
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var got, exp any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v\nBody: %s", err, w.Body.String())
	}
	if err := json.Unmarshal([]byte(want), &exp); err != nil {
		t.Fatalf("bad expected JSON: %v", err)
	}
	gotJSON, _ := json.MarshalIndent(got, "", "  ")
	expJSON, _ := json.MarshalIndent(exp, "", "  ")
	if !bytes.Equal(gotJSON, expJSON) {
		t.Errorf("body mismatch:\ngot:\n%s\nwant:\n%s", gotJSON, expJSON)
	}
}

// ErrorBody is the payload of the API error envelope {"error": {...}}.
type ErrorBody struct {
	Type        string `json:"type"`
	Code        string `json:"code,omitempty"`
	DeclineCode string `json:"decline_code,omitempty"`
	Message     string `json:"message,omitempty"`
	Param       string `json:"param,omitempty"`
}

// AssertAPIError checks that the response carries an error envelope with the
// expected type.
func AssertAPIError(t *testing.T, w *httptest.ResponseRecorder, expectedType string) *ErrorBody {
	t.Helper()

	var env struct {
		Error *ErrorBody `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode error response: %v\nBody: %s", err, w.Body.String())
	}
	if env.Error == nil {
		t.Fatalf("response has no error envelope")
	}

	if env.Error.Type != expectedType {
		t.Errorf("expected error type %s, got %s (message: %s)", expectedType, env.Error.Type, env.Error.Message)
	}

	return env.Error
}

// AssertHeader checks that a response header has the expected value.
func AssertHeader(t *testing.T, w *httptest.ResponseRecorder, key, expectedValue string) {
	t.Helper()
	actual := w.Header().Get(key)
	if actual != expectedValue {
		t.Errorf("expected header %s=%s, got %s", key, expectedValue, actual)
	}
}

// DecodeJSON decodes the response body into the provided value.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v\nBody: %s", err, w.Body.String())
	}
}

// ParseEncoded decodes an encoded query string or form body.
func ParseEncoded(t *testing.T, encoded string) form.Values {
	t.Helper()
	v, err := form.Parse(encoded)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", encoded, err)
	}
	return v
}

// AssertEncoded checks that encoded holds exactly the given "key=value"
// pairs, in any order. Pairs are given decoded, e.g. "shipping[name]=Jane".
func AssertEncoded(t *testing.T, encoded string, pairs ...string) {
	t.Helper()

	got := pairStrings(ParseEncoded(t, encoded))
	want := slices.Clone(pairs)
	slices.Sort(got)
	slices.Sort(want)

	if !slices.Equal(got, want) {
		t.Errorf("encoded parameters mismatch:\nExpected:\n  %s\nActual:\n  %s",
			strings.Join(want, "\n  "), strings.Join(got, "\n  "))
	}
}

// AssertNoKey checks that encoded carries neither key nor any key nested
// under it.
func AssertNoKey(t *testing.T, encoded, key string) {
	t.Helper()
	for _, p := range ParseEncoded(t, encoded) {
		if p.Key == key || strings.HasPrefix(p.Key, key+"[") {
			t.Errorf("unexpected key %s in %q", p.Key, encoded)
		}
	}
}

func pairStrings(v form.Values) []string {
	out := make([]string, len(v))
	for i, p := range v {
		out[i] = p.Key + "=" + p.Value
	}
	return out
}
