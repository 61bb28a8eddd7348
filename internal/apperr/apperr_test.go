package apperr

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

// violationsFor runs the given struct through a fresh validator and returns
// the accumulated violations.
func violationsFor(t *testing.T, v any) validator.ValidationErrors {
	t.Helper()
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(v)
	if err == nil {
		t.Fatalf("expected validation failure for %+v", v)
	}
	var out validator.ValidationErrors
	if !errors.As(err, &out) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	return out
}

func TestValidationError_OneMessagePerViolation(t *testing.T) {
	type input struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8,max=128"`
	}
	viol := violationsFor(t, input{Email: "not-an-email", Password: "short"})

	e := &ValidationError{Violations: viol}
	if e.Status() != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", e.Status())
	}

	msgs := e.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2: %+v", len(msgs), msgs)
	}

	byCode := map[string]Message{}
	for _, m := range msgs {
		byCode[m.Code] = m
	}

	em, ok := byCode["email"]
	if !ok || em.Field != "Email" {
		t.Fatalf("missing email violation: %+v", msgs)
	}
	if len(em.Details) != 0 {
		t.Fatalf("email rule has no parameter, details = %+v", em.Details)
	}

	mn, ok := byCode["min"]
	if !ok || mn.Field != "Password" {
		t.Fatalf("missing min violation: %+v", msgs)
	}
	if mn.Details["min"] != "8" {
		t.Fatalf("min parameter not echoed: %+v", mn.Details)
	}
}

func TestValidationError_MultipleRulesSameField(t *testing.T) {
	// A field can violate only one of min/max at a time, but required+min
	// style accumulation across fields must never stop at the first.
	type input struct {
		A string `validate:"required"`
		B string `validate:"required"`
		C string `validate:"required"`
	}
	e := &ValidationError{Violations: violationsFor(t, input{})}
	if got := len(e.Messages()); got != 3 {
		t.Fatalf("got %d messages, want 3", got)
	}
}

func TestDecodeError_TypeMismatch(t *testing.T) {
	var dst struct {
		N int `json:"n"`
	}
	err := json.Unmarshal([]byte(`{"n":"x"}`), &dst)
	e := &DecodeError{Err: err}

	msgs := e.Messages()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].Code != "invalid_body" || msgs[0].Field != "n" {
		t.Fatalf("unexpected message: %+v", msgs[0])
	}
	if !strings.Contains(msgs[0].Message, "expected") {
		t.Fatalf("message should name expected type: %q", msgs[0].Message)
	}
}

func TestDecodeError_SyntaxAndEOF(t *testing.T) {
	var dst any
	synErr := json.Unmarshal([]byte(`{"a":`), &dst)
	e := &DecodeError{Err: synErr}
	if m := e.Messages()[0]; m.Code != "invalid_body" || m.Message == "" {
		t.Fatalf("unexpected syntax message: %+v", m)
	}

	eofErr := json.NewDecoder(strings.NewReader("")).Decode(&dst)
	if !errors.Is(eofErr, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", eofErr)
	}
	e = &DecodeError{Err: eofErr}
	if m := e.Messages()[0]; m.Message != "empty or truncated JSON body" {
		t.Fatalf("unexpected EOF message: %+v", m)
	}
}

func TestDatabaseError_HidesDetail(t *testing.T) {
	e := &DatabaseError{Err: errors.New("pq: connection refused on 10.0.0.3")}
	if e.Status() != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", e.Status())
	}
	msgs := e.Messages()
	if msgs == nil || len(msgs) != 0 {
		t.Fatalf("database errors must render zero messages, got %+v", msgs)
	}
	// Internal detail stays available for logging.
	if !strings.Contains(e.Error(), "connection refused") {
		t.Fatalf("internal error text lost: %q", e.Error())
	}
}

func TestRateLimitError_Headers(t *testing.T) {
	e := &RateLimitError{RetryAfter: 2 * time.Second, Limit: 5}
	h := e.Headers()
	if h.Get("Retry-After") != "2" {
		t.Fatalf("Retry-After = %q, want 2", h.Get("Retry-After"))
	}
	if h.Get("X-RateLimit-Limit") != "5" {
		t.Fatalf("X-RateLimit-Limit = %q, want 5", h.Get("X-RateLimit-Limit"))
	}

	// Sub-second waits round up so clients never retry immediately.
	e = &RateLimitError{RetryAfter: 120 * time.Millisecond}
	h = e.Headers()
	if h.Get("Retry-After") != "1" {
		t.Fatalf("Retry-After = %q, want 1", h.Get("Retry-After"))
	}
	if h.Get("X-RateLimit-Limit") != "" {
		t.Fatalf("limit header must be omitted when unset")
	}
	if e.Messages()[0].Code != "rate_limited" {
		t.Fatalf("unexpected code %q", e.Messages()[0].Code)
	}
}

func TestMessage_CopyOnWrite(t *testing.T) {
	base := New("x").WithDetail("a", 1)
	changed := base.WithDetail("b", 2)

	if _, ok := base.Details["b"]; ok {
		t.Fatalf("WithDetail mutated the original: %+v", base.Details)
	}
	if changed.Details["a"] != 1 || changed.Details["b"] != 2 {
		t.Fatalf("derived message incomplete: %+v", changed.Details)
	}
}

func TestMessage_JSON_OmitsEmpty(t *testing.T) {
	b, err := json.Marshal(New("post_not_found").WithDetail("post", "p1"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	if strings.Contains(s, "message") || strings.Contains(s, "field") {
		t.Fatalf("empty data must be omitted: %s", s)
	}
	if !strings.Contains(s, `"code":"post_not_found"`) || !strings.Contains(s, `"post":"p1"`) {
		t.Fatalf("unexpected wire form: %s", s)
	}
}

func TestMessage_JSON_RoundTrip(t *testing.T) {
	b, err := json.Marshal(New("min").WithMessage("too short").WithField("password").WithDetail("min", "8"))
	if err != nil {
		t.Fatal(err)
	}
	var got Message
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("parse back: %v", err)
	}
	if got.Code != "min" || got.Message != "too short" || got.Field != "password" {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if got.Details["min"] != "8" {
		t.Fatalf("details = %+v", got.Details)
	}

	// A bare code survives with the optional fields genuinely absent.
	b, err = json.Marshal(New("rate_limited"))
	if err != nil {
		t.Fatal(err)
	}
	got = Message{}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("parse back: %v", err)
	}
	if got.Code != "rate_limited" || got.Message != "" || got.Field != "" || got.Details != nil {
		t.Fatalf("bare message round trip: %+v", got)
	}
}

func TestStatusFallbacks(t *testing.T) {
	if NoRoute().Status() != http.StatusNotFound {
		t.Fatal("NoRoute status")
	}
	if NoMethod().Status() != http.StatusMethodNotAllowed {
		t.Fatal("NoMethod status")
	}
	if Internal().Status() != http.StatusInternalServerError {
		t.Fatal("Internal status")
	}
	if NoRoute().Messages()[0].Code != "not_found" {
		t.Fatal("NoRoute code")
	}
}
