package stripe

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/broady/stripe/form"
)

// ErrPathTemplate is the panic value (wrapped) raised when a path template
// and its arguments disagree. It signals a bug in the caller, never a
// runtime condition.
var ErrPathTemplate = errors.New("stripe: path template mismatch")

// TestHelperPrefix marks endpoints that only exist in test mode.
const TestHelperPrefix = "/test_helpers/"

// FormContentType is the content type of form-placed request bodies.
const FormContentType = "application/x-www-form-urlencoded"

// Request is an immutable description of one endpoint invocation.
// Parameters are encoded when they are bound, so a Request is a snapshot:
// later changes to the parameter record do not affect it.
//
// A Request is safe for concurrent use.
type Request struct {
	method    Method
	path      string
	placement Placement
	values    form.Values
	err       error
}

// NewRequest returns a request with no parameters and the method's default
// placement. path must already be filled in; see [FormatPath].
// NewRequest panics if method is not a declared verb.
func NewRequest(method Method, path string) *Request {
	if !method.Known() {
		panic(fmt.Sprintf("stripe: unsupported method %q", string(method)))
	}
	return &Request{
		method:    method,
		path:      path,
		placement: method.DefaultPlacement(),
		values:    form.Values{},
	}
}

// Query returns a copy of r with params encoded into the query string.
func (r *Request) Query(params any) *Request {
	return r.bind(PlacementQuery, params)
}

// Form returns a copy of r with params encoded into a form body.
func (r *Request) Form(params any) *Request {
	return r.bind(PlacementForm, params)
}

func (r *Request) bind(placement Placement, params any) *Request {
	c := *r
	c.placement = placement
	vals, err := form.Encode(params)
	if err != nil {
		c.values = form.Values{}
		c.err = err
		return &c
	}
	c.values = vals
	c.err = nil
	return &c
}

// WithParam returns a copy of r with key set to value, keeping the position
// of an existing key.
func (r *Request) WithParam(key, value string) *Request {
	c := *r
	c.values = r.values.Clone()
	c.values.Set(key, value)
	return &c
}

// Method returns the HTTP verb.
func (r *Request) Method() Method { return r.method }

// Path returns the filled-in path, without query string.
func (r *Request) Path() string { return r.path }

// Placement returns where the parameters are serialized.
func (r *Request) Placement() Placement { return r.placement }

// Values returns a copy of the encoded parameters.
func (r *Request) Values() form.Values { return r.values.Clone() }

// Param returns the encoded value stored under key.
func (r *Request) Param(key string) (string, bool) { return r.values.Lookup(key) }

// Err returns the error raised while encoding the parameters, if any.
// Dispatching a request with an encoding error fails without contacting
// the transport.
func (r *Request) Err() error { return r.err }

// Encode returns the serialized parameters.
func (r *Request) Encode() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.values.Encode(), nil
}

// URL returns the path plus, for query placement, the encoded parameters.
func (r *Request) URL() string {
	if r.placement != PlacementQuery || len(r.values) == 0 {
		return r.path
	}
	return r.path + "?" + r.values.Encode()
}

// Body returns the form body, or "" for query placement.
func (r *Request) Body() string {
	if r.placement != PlacementForm {
		return ""
	}
	return r.values.Encode()
}

// ContentType returns the body content type, or "" for query placement.
func (r *Request) ContentType() string {
	if r.placement != PlacementForm {
		return ""
	}
	return FormContentType
}

// IsTestHelper reports whether the endpoint lives under the test-mode prefix.
func (r *Request) IsTestHelper() bool {
	return strings.HasPrefix(r.path, TestHelperPrefix)
}

// Equal reports whether both requests describe the same invocation.
func (r *Request) Equal(o *Request) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.method == o.method &&
		r.path == o.path &&
		r.placement == o.placement &&
		r.values.Equal(o.values) &&
		errString(r.err) == errString(o.err)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (r *Request) String() string {
	return string(r.method) + " " + r.path
}

// FormatPath fills the {name} placeholders of template with args, in order.
// Each argument is path-escaped. FormatPath panics with an error wrapping
// [ErrPathTemplate] if the number of placeholders and arguments differ.
func FormatPath(template string, args ...string) string {
	var b strings.Builder
	rest := template
	n := 0
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			panic(fmt.Errorf("%w: unterminated placeholder in %q", ErrPathTemplate, template))
		}
		if n >= len(args) {
			panic(fmt.Errorf("%w: %q has more placeholders than the %d arguments given", ErrPathTemplate, template, len(args)))
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(args[n]))
		n++
		rest = rest[open+end+1:]
	}
	if n != len(args) {
		panic(fmt.Errorf("%w: %q has %d placeholders, got %d arguments", ErrPathTemplate, template, n, len(args)))
	}
	return b.String()
}
