package stripetest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/http/httptest"
	"reflect"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/schema"

	"github.com/broady/stripe"
	"github.com/broady/stripe/form"
	"github.com/broady/stripe/issuing"
	"github.com/broady/stripe/tax"
)

// DefaultAPIKey is the secret key a Server accepts unless WithAPIKey is used.
const DefaultAPIKey = "sk_test_stripetest"

// RecordedRequest is a request as received by a Server.
type RecordedRequest struct {
	Method string
	Path   string
	Query  form.Values
	Form   form.Values
	Header http.Header
}

type replay struct {
	body   []byte
	status int
	header http.Header
	resp   []byte
}

// Server is an in-memory fake of the issuing card and tax ID endpoints,
// mounted under /v1. It authenticates with a bearer key, replays POSTs that
// repeat an Idempotency-Key, and can be told to fail upcoming requests.
type Server struct {
	router   chi.Router
	logger   *slog.Logger
	apiKey   string
	decoder  *schema.Decoder
	validate *validator.Validate
	now      func() time.Time

	mu       sync.Mutex
	cards    []*issuing.Card
	taxIDs   []*tax.TaxID
	seq      int
	replays  map[string]replay
	failures []int
	requests []RecordedRequest
}

// Option configures a Server.
type Option func(*Server)

// WithAPIKey sets the accepted secret key.
func WithAPIKey(key string) Option {
	return func(s *Server) { s.apiKey = key }
}

// WithLogger sets the logger used for request logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithClock sets the time source used for created timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer returns an empty fake API.
func NewServer(opts ...Option) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   slog.New(slog.DiscardHandler),
		apiKey:   DefaultAPIKey,
		decoder:  schema.NewDecoder(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		replays:  make(map[string]replay),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "stripetest")
	s.decoder.IgnoreUnknownKeys(true)
	s.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("schema"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	s.routes()
	return s
}

// Serve starts s on a local listener for the duration of tb and returns
// the API base URL, ending in /v1.
func (s *Server) Serve(tb testing.TB) string {
	tb.Helper()
	ts := httptest.NewServer(s)
	tb.Cleanup(ts.Close)
	return ts.URL + "/v1"
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// FailNext makes the next n API requests answer with status and an error
// envelope matching it. Injected failures are not stored for idempotent replay.
func (s *Server) FailNext(status, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for range n {
		s.failures = append(s.failures, status)
	}
}

// Requests returns the requests received so far, oldest first.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Card returns a copy of a stored card.
func (s *Server) Card(id string) (issuing.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.findCard(id); c != nil {
		return snapshot(c), true
	}
	return issuing.Card{}, false
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Use(s.requestID)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, errInvalidRequest, "",
			fmt.Sprintf("Unrecognized request URL (%s: %s).", r.Method, r.URL.Path), "")
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Use(s.injectFailures)
		r.Use(s.idempotency)

		r.Route("/issuing/cards", func(r chi.Router) {
			r.Get("/", s.handleListCards)
			r.Post("/", s.handleCreateCard)
			r.Route("/{card}", func(r chi.Router) {
				r.Get("/", s.handleGetCard)
				r.Post("/", s.handleUpdateCard)
			})
		})
		r.Post("/test_helpers/issuing/cards/{card}/shipping/{action}", s.handleShippingAction)

		r.Route("/tax_ids", func(r chi.Router) {
			r.Get("/", s.handleListTaxIDs)
			r.Post("/", s.handleCreateTaxID)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTaxID)
				r.Delete("/", s.handleDeleteTaxID)
			})
		})
		r.Delete("/customers/{customer}/tax_ids/{id}", s.handleDeleteTaxID)
	})
}

// record buffers the body so handlers can read it again.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		query, _ := form.Parse(r.URL.RawQuery)
		bodyVals, _ := form.Parse(string(body))
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  query,
			Form:   bodyVals,
			Header: r.Header.Clone(),
		})
		s.mu.Unlock()

		sw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
		)
	})
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Request-Id", "req_"+strings.ReplaceAll(uuid.New().String(), "-", "")[:14])
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || key == "" {
			respondError(w, http.StatusUnauthorized, errInvalidRequest, "",
				"You did not provide an API key.", "")
			return
		}
		if key != s.apiKey {
			respondError(w, http.StatusUnauthorized, errInvalidRequest, "",
				"Invalid API Key provided.", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status := 0
		if len(s.failures) > 0 {
			status = s.failures[0]
			s.failures = s.failures[1:]
		}
		s.mu.Unlock()

		switch {
		case status == 0:
			next.ServeHTTP(w, r)
		case status == http.StatusTooManyRequests:
			respondError(w, status, errInvalidRequest, "rate_limit", "Too many requests hit the API too quickly.", "")
		case status >= 500:
			respondError(w, status, errAPI, "", "An unknown error occurred.", "")
		default:
			respondError(w, status, errInvalidRequest, "", http.StatusText(status), "")
		}
	})
}

func (s *Server) idempotency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("Idempotency-Key")
		if r.Method != http.MethodPost || key == "" {
			next.ServeHTTP(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		saved, ok := s.replays[key]
		s.mu.Unlock()
		if ok {
			if !bytes.Equal(saved.body, body) {
				respondError(w, http.StatusBadRequest, errIdempotency, "",
					"Keys for idempotent requests can only be used with the same parameters they were first used with.", "")
				return
			}
			maps.Copy(w.Header(), saved.header)
			w.Header().Set("Idempotent-Replayed", "true")
			w.WriteHeader(saved.status)
			w.Write(saved.resp)
			return
		}

		cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(cw, r)
		if cw.status >= 500 {
			return
		}
		s.mu.Lock()
		s.replays[key] = replay{
			body:   body,
			status: cw.status,
			header: http.Header{"Content-Type": {w.Header().Get("Content-Type")}},
			resp:   cw.buf.Bytes(),
		}
		s.mu.Unlock()
	})
}

// captureWriter records the status and body written through it.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *captureWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// nextID returns a fresh sequential id. Callers hold s.mu.
func (s *Server) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s_%04d", prefix, s.seq)
}

// decode fills dst from vals with gorilla/schema and validates it. On
// failure it writes the error response and returns false.
func (s *Server) decode(w http.ResponseWriter, dst any, vals form.Values) bool {
	if err := s.decoder.Decode(dst, vals.URLValues()); err != nil {
		param := ""
		var me schema.MultiError
		if errors.As(err, &me) {
			if keys := slices.Sorted(maps.Keys(me)); len(keys) > 0 {
				param = keys[0]
			}
		}
		respondError(w, http.StatusBadRequest, errInvalidRequest, "parameter_invalid_integer",
			fmt.Sprintf("Invalid value for %s.", param), param)
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) && len(ves) > 0 {
			fe := ves[0]
			code := "parameter_invalid"
			if fe.Tag() == "required" {
				code = "parameter_missing"
			}
			respondError(w, http.StatusBadRequest, errInvalidRequest, code, formatFieldError(fe), fe.Field())
			return false
		}
		respondError(w, http.StatusBadRequest, errInvalidRequest, "", err.Error(), "")
		return false
	}
	return true
}

// formatFieldError turns a validator.FieldError into an API error message.
func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Missing required param: " + fe.Field() + "."
	case "oneof":
		return fmt.Sprintf("Invalid %s: must be one of %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "gte":
		return fmt.Sprintf("Invalid %s: must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("Invalid %s: must be at most %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("Invalid %s: must be exactly %s characters", fe.Field(), fe.Param())
	case "numeric":
		return fmt.Sprintf("Invalid %s: must be numeric", fe.Field())
	case "lowercase":
		return fmt.Sprintf("Invalid %s: must be lowercase", fe.Field())
	default:
		return fmt.Sprintf("Invalid %s: failed %s validation", fe.Field(), fe.Tag())
	}
}

// bodyValues returns the parsed form body of r.
func bodyValues(w http.ResponseWriter, r *http.Request) (form.Values, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequest, "", "Could not read request body.", "")
		return nil, false
	}
	vals, err := form.Parse(string(body))
	if err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequest, "", "Malformed form body: "+err.Error(), "")
		return nil, false
	}
	return vals, true
}

func queryValues(w http.ResponseWriter, r *http.Request) (form.Values, bool) {
	vals, err := form.Parse(r.URL.RawQuery)
	if err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequest, "", "Malformed query: "+err.Error(), "")
		return nil, false
	}
	return vals, true
}

// subValues returns the pairs under prefix with the prefix stripped, so
// "metadata[k]" under "metadata" becomes "k".
func subValues(vals form.Values, prefix string) form.Values {
	var out form.Values
	for _, p := range vals {
		rest, ok := strings.CutPrefix(p.Key, prefix+"[")
		if !ok {
			continue
		}
		name, tail, ok := strings.Cut(rest, "]")
		if !ok {
			continue
		}
		out.Add(name+tail, p.Value)
	}
	return out
}

// nestParam puts a param reported by a sub-parser back under parent,
// undoing subValues: "spending_limits[0][amount]" under "spending_controls"
// becomes "spending_controls[spending_limits][0][amount]".
func nestParam(parent, param string) string {
	name, tail, _ := strings.Cut(param, "[")
	if tail != "" {
		tail = "[" + tail
	}
	return parent + "[" + name + "]" + tail
}

// hasPrefix reports whether vals carries key or any key nested under it.
func hasPrefix(vals form.Values, key string) bool {
	for _, p := range vals {
		if p.Key == key || strings.HasPrefix(p.Key, key+"[") {
			return true
		}
	}
	return false
}

type pageQuery struct {
	EndingBefore  string `schema:"ending_before"`
	Limit         int64  `schema:"limit" validate:"omitempty,min=1,max=100"`
	StartingAfter string `schema:"starting_after"`
}

// paginate slices items, newest first, the way the list endpoints do.
func paginate[T stripe.Object](items []T, q pageQuery) ([]T, bool, string) {
	limit := int(q.Limit)
	if limit == 0 {
		limit = 10
	}
	index := func(id string) int {
		return slices.IndexFunc(items, func(it T) bool { return it.ObjectID() == id })
	}
	switch {
	case q.EndingBefore != "":
		i := index(q.EndingBefore)
		if i < 0 {
			return nil, false, "ending_before"
		}
		before := items[:i]
		if len(before) > limit {
			return before[len(before)-limit:], true, ""
		}
		return before, false, ""
	case q.StartingAfter != "":
		i := index(q.StartingAfter)
		if i < 0 {
			return nil, false, "starting_after"
		}
		items = items[i+1:]
	}
	if len(items) > limit {
		return items[:limit], true, ""
	}
	return items, false, ""
}

func respondList[T any](w http.ResponseWriter, url string, data []T, hasMore bool) {
	respondJSON(w, http.StatusOK, Page(url, hasMore, data...))
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

const (
	errAPI            = "api_error"
	errIdempotency    = "idempotency_error"
	errInvalidRequest = "invalid_request_error"
)

type errorBody struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

func respondError(w http.ResponseWriter, status int, typ, code, message, param string) {
	respondJSON(w, status, map[string]errorBody{
		"error": {Type: typ, Code: code, Message: message, Param: param},
	})
}

func respondMissing(w http.ResponseWriter, kind, id, param string) {
	respondError(w, http.StatusNotFound, errInvalidRequest, "resource_missing",
		fmt.Sprintf("No such %s: '%s'", kind, id), param)
}

// newestFirst returns items in reverse creation order.
func newestFirst[T any](items []T) []T {
	out := slices.Clone(items)
	slices.Reverse(out)
	return out
}
