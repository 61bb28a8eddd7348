package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Shape is the capability every client-visible error implements: a total
// mapping to an HTTP status plus zero or more Messages. Implementations must
// be pure: no I/O, no panics.
type Shape interface {
	Status() int
	Messages() []Message
}

// HeaderProvider is implemented by shapes that attach extra response headers
// (currently only the rate-limit variant, which forwards Retry-After and
// limit information).
type HeaderProvider interface {
	Headers() http.Header
}

// AppError is the closed set of cross-cutting failures shared by every route
// group. Feature-specific errors (auth, posts, keys) live with their feature
// and are composed with AppError through RouteError.
type AppError interface {
	Shape
	error
	appError()
}

//
// Validation
//

// ValidationError carries the accumulated field-level violations from the
// semantic validation stage. One input field with N violated rules yields
// N messages, each naming the field and the rule parameter.
type ValidationError struct {
	Violations validator.ValidationErrors
}

func (e *ValidationError) appError() {}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Violations.Error()
}

func (e *ValidationError) Unwrap() error { return e.Violations }

func (e *ValidationError) Status() int { return http.StatusBadRequest }

func (e *ValidationError) Messages() []Message {
	out := make([]Message, 0, len(e.Violations))
	for _, v := range e.Violations {
		m := New(v.Tag()).WithField(v.Field())
		if p := v.Param(); p != "" {
			m = m.WithDetail(v.Tag(), p)
		}
		out = append(out, m)
	}
	return out
}

//
// Body decoding
//

// DecodeError reports a request body that could not be decoded into the
// target shape: malformed JSON, a wrong JSON type for a field, or a
// truncated/oversized body. It always renders as exactly one message.
type DecodeError struct {
	Err error
}

func (e *DecodeError) appError() {}

func (e *DecodeError) Error() string { return "body decode error: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Status() int { return http.StatusBadRequest }

func (e *DecodeError) Messages() []Message {
	m := New("invalid_body")

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		maxErr    *http.MaxBytesError
	)
	switch {
	case errors.As(e.Err, &typeErr):
		m = m.WithField(typeErr.Field).
			WithMessage(fmt.Sprintf("expected %s at offset %d", typeErr.Type, typeErr.Offset))
	case errors.As(e.Err, &syntaxErr):
		m = m.WithMessage(fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset))
	case errors.As(e.Err, &maxErr):
		m = m.WithMessage("request body too large")
	case errors.Is(e.Err, io.EOF), errors.Is(e.Err, io.ErrUnexpectedEOF):
		m = m.WithMessage("empty or truncated JSON body")
	default:
		m = m.WithMessage(e.Err.Error())
	}
	return []Message{m}
}

//
// Query string decoding
//

// QueryError reports a query string that could not be decoded into the
// target shape.
type QueryError struct {
	Err error
}

func (e *QueryError) appError() {}

func (e *QueryError) Error() string { return "query decode error: " + e.Err.Error() }

func (e *QueryError) Unwrap() error { return e.Err }

func (e *QueryError) Status() int { return http.StatusBadRequest }

func (e *QueryError) Messages() []Message {
	return []Message{New("invalid_query").WithMessage(e.Err.Error())}
}

//
// Path parameters
//

// PathError reports an unparseable path parameter (e.g. a non-UUID id).
type PathError struct {
	Param string
	Err   error
}

func (e *PathError) appError() {}

func (e *PathError) Error() string {
	return "path decode error: " + e.Param + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error { return e.Err }

func (e *PathError) Status() int { return http.StatusBadRequest }

func (e *PathError) Messages() []Message {
	return []Message{New("invalid_path").WithField(e.Param).WithMessage(e.Err.Error())}
}

//
// Database
//

// DatabaseError wraps any persistence failure that was not classified as a
// named constraint violation. It renders with ZERO client-visible messages:
// internal database detail must never leak to clients. The wrapped error is
// still logged server-side by the response pipeline.
type DatabaseError struct {
	Err error
}

func (e *DatabaseError) appError() {}

func (e *DatabaseError) Error() string { return "database error: " + e.Err.Error() }

func (e *DatabaseError) Unwrap() error { return e.Err }

func (e *DatabaseError) Status() int { return http.StatusInternalServerError }

func (e *DatabaseError) Messages() []Message { return []Message{} }

//
// Rate limiting
//

// RateLimitError is produced by the rate-limiting middleware when a client
// exceeds its budget. Headers supplied by the limiter (Retry-After, limit
// information) are forwarded to the client unchanged.
type RateLimitError struct {
	// RetryAfter is the suggested wait before the next attempt.
	RetryAfter time.Duration
	// Limit is the bucket burst size; 0 omits the header.
	Limit int
}

func (e *RateLimitError) appError() {}

func (e *RateLimitError) Error() string { return "rate limit exceeded" }

func (e *RateLimitError) Status() int { return http.StatusTooManyRequests }

func (e *RateLimitError) Messages() []Message {
	return []Message{New("rate_limited").WithMessage("too many requests")}
}

// Headers implements HeaderProvider.
func (e *RateLimitError) Headers() http.Header {
	h := http.Header{}
	secs := int(e.RetryAfter / time.Second)
	if secs < 1 {
		secs = 1
	}
	h.Set("Retry-After", strconv.Itoa(secs))
	if e.Limit > 0 {
		h.Set("X-RateLimit-Limit", strconv.Itoa(e.Limit))
	}
	return h
}

//
// Plain status failures
//

// StatusError is a minimal shape for transport-level fallbacks (unmatched
// route, method not allowed, recovered panic) that are not part of any
// feature's error set.
type StatusError struct {
	Code int
	Kind string
	Text string
}

func (e *StatusError) appError() {}

func (e *StatusError) Error() string { return e.Kind + ": " + e.Text }

func (e *StatusError) Status() int { return e.Code }

func (e *StatusError) Messages() []Message {
	return []Message{New(e.Kind).WithMessage(e.Text)}
}

// NoRoute is the 404 shape for requests that match no registered route.
func NoRoute() *StatusError {
	return &StatusError{Code: http.StatusNotFound, Kind: "not_found", Text: "resource not found"}
}

// NoMethod is the 405 shape for a known route hit with the wrong verb.
func NoMethod() *StatusError {
	return &StatusError{Code: http.StatusMethodNotAllowed, Kind: "method_not_allowed", Text: "method not allowed"}
}

// Internal is the 500 shape used for recovered panics.
func Internal() *StatusError {
	return &StatusError{Code: http.StatusInternalServerError, Kind: "internal_error", Text: "internal server error"}
}
