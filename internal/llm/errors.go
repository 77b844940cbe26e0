package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Failure kinds. Every error from a vendor adapter is an *Error whose Kind
// is one of these, so callers test with errors.Is.
var (
	ErrRateLimit           = errors.New("rate limited")
	ErrProviderUnavailable = errors.New("LLM provider unavailable")
	ErrRequestRejected     = errors.New("request rejected by provider")
	ErrInvalidResponse     = errors.New("invalid LLM response")
	ErrMaxTokensExceeded   = errors.New("LLM response truncated: max tokens exceeded")
)

// Error is a failed Generate call.
type Error struct {
	Kind error

	// RetryAfter is the server's requested wait, for rate limits.
	RetryAfter time.Duration

	// Content is whatever the model returned before the failure.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// classify maps an HTTP status from a vendor SDK error onto a kind. Status 0
// means the request never got an answer.
func classify(status int, header http.Header, err error) *Error {
	switch {
	case status == http.StatusTooManyRequests:
		return &Error{Kind: ErrRateLimit, RetryAfter: retryAfter(header), Err: err}
	case status >= 400 && status < 500:
		return &Error{Kind: ErrRequestRejected, Err: err}
	default:
		return &Error{Kind: ErrProviderUnavailable, Err: err}
	}
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func invalidResponse(content json.RawMessage, format string, args ...any) *Error {
	return &Error{Kind: ErrInvalidResponse, Content: content, Err: fmt.Errorf(format, args...)}
}
