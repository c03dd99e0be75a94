package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/broady/stripe/enum"
)

// ErrorType is the broad category of an API error.
type ErrorType string

const (
	ErrorTypeAPI            ErrorType = "api_error"
	ErrorTypeCard           ErrorType = "card_error"
	ErrorTypeIdempotency    ErrorType = "idempotency_error"
	ErrorTypeInvalidRequest ErrorType = "invalid_request_error"
)

var errorTypes = enum.Strict("ErrorType",
	ErrorTypeAPI, ErrorTypeCard, ErrorTypeIdempotency, ErrorTypeInvalidRequest)

func ParseErrorType(s string) (ErrorType, error) { return errorTypes.Parse(s) }
func (t ErrorType) String() string               { return string(t) }
func (t ErrorType) Known() bool                  { return errorTypes.Known(t) }

// APIError is a failed API response. The fields mirror the error envelope
// the API returns; StatusCode and RequestID come from the HTTP response.
type APIError struct {
	Type          ErrorType
	Code          string
	DeclineCode   string
	DocURL        string
	Message       string
	Param         string
	RequestLogURL string

	StatusCode int
	RequestID  string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "stripe: %d %s", e.StatusCode, e.Type)
	if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Param != "" {
		fmt.Fprintf(&b, " [param %s]", e.Param)
	}
	if e.RequestID != "" {
		fmt.Fprintf(&b, " [request %s]", e.RequestID)
	}
	return b.String()
}

// IsRetryable reports whether repeating the request may succeed: rate
// limits, lock timeouts and server-side failures.
func (e *APIError) IsRetryable() bool {
	switch {
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode == http.StatusConflict && e.Code == "lock_timeout":
		return true
	case e.StatusCode >= 500:
		return true
	}
	return false
}

type errorEnvelope struct {
	Error *struct {
		Type          string `json:"type"`
		Code          string `json:"code"`
		DeclineCode   string `json:"decline_code"`
		DocURL        string `json:"doc_url"`
		Message       string `json:"message"`
		Param         string `json:"param"`
		RequestLogURL string `json:"request_log_url"`
	} `json:"error"`
}

// decodeAPIError builds an APIError from a non-2xx response. A body that is
// not an error envelope becomes an api_error carrying the raw text.
func decodeAPIError(status int, requestID string, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, RequestID: requestID}
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Error == nil {
		apiErr.Type = ErrorTypeAPI
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}
	e := env.Error
	// Categories added later are kept verbatim; Known reports false for them.
	apiErr.Type = ErrorType(e.Type)
	apiErr.Code = e.Code
	apiErr.DeclineCode = e.DeclineCode
	apiErr.DocURL = e.DocURL
	apiErr.Message = e.Message
	apiErr.Param = e.Param
	apiErr.RequestLogURL = e.RequestLogURL
	return apiErr
}

// IsNotFound reports whether err is an API error for a missing resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsAuthError reports whether err is an API error for a missing or rejected key.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}

// IsCardError reports whether err is a declined or otherwise failed card operation.
func IsCardError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrorTypeCard
}

// retryable classifies failures for the retry loop.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRetryable()
	}
	var netErr *networkError
	return errors.As(err, &netErr)
}

// networkError is a failure to get any response from the server.
type networkError struct {
	err error
}

func (e *networkError) Error() string { return "stripe: network: " + e.err.Error() }
func (e *networkError) Unwrap() error { return e.err }
