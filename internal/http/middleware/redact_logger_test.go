package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func withCapturedLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf) // plain JSON lines
	return &buf
}

func TestRedact_Patterns(t *testing.T) {
	in := "id=123e4567-e89b-12d3-a456-426614174000 mail=ada@example.com tel=555-123-4567"
	out := redact(in)
	if strings.Contains(out, "ada@example.com") || strings.Contains(out, "123e4567") || strings.Contains(out, "555-123-4567") {
		t.Fatalf("redact leaked: %s", out)
	}
	if !strings.Contains(out, "[REDACTED:id]") || !strings.Contains(out, "[REDACTED:email]") || !strings.Contains(out, "[REDACTED:phone]") {
		t.Fatalf("redact markers missing: %s", out)
	}
	// UUIDs must not be chewed up by the phone pattern.
	if strings.Contains(out, "[REDACTED:phone]-") {
		t.Fatalf("uuid partially matched as phone: %s", out)
	}
	if redact("") != "" {
		t.Fatal("empty input must stay empty")
	}
}

func TestRedactingLogger_MasksAndRedacts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := withCapturedLogger(t)

	r := gin.New()
	// Simulate upstream RequestID middleware that sets the response header.
	r.Use(func(c *gin.Context) {
		c.Header("X-Request-ID", "rid-resp")
		c.Next()
	})
	r.Use(RedactingLogger(RedactOptions{MaskHeaders: []string{"X-Api-Key"}}))
	r.GET("/posts/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	q := "email=a.b+tag@example.com&id=123e4567-e89b-12d3-a456-426614174000"
	req := httptest.NewRequest(http.MethodGet, "/posts/123?"+q, nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("Cookie", "session=topsecret")
	req.Header.Set("X-Api-Key", "shhh")
	req.Header.Set("X-Custom", "reach me at ada@example.com")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	logs := buf.String()
	if !strings.Contains(logs, `"level":"info"`) {
		t.Fatalf("expected info log, got: %s", logs)
	}
	if !strings.Contains(logs, `"path":"/posts/:id"`) {
		t.Fatalf("expected the route pattern, got: %s", logs)
	}
	if !strings.Contains(logs, `"request_id":"rid-resp"`) {
		t.Fatalf("expected request_id from response header, got: %s", logs)
	}
	if strings.Contains(logs, "Bearer secret") || strings.Contains(logs, "topsecret") || strings.Contains(logs, "shhh") {
		t.Fatalf("credential value leaked: %s", logs)
	}
	if !strings.Contains(logs, `"Authorization":"[REDACTED]"`) || !strings.Contains(logs, `"Cookie":"[REDACTED]"`) || !strings.Contains(logs, `"X-Api-Key":"[REDACTED]"`) {
		t.Fatalf("headers not masked: %s", logs)
	}
	if strings.Contains(logs, "a.b+tag@example.com") || strings.Contains(logs, "ada@example.com") {
		t.Fatalf("email leaked: %s", logs)
	}
}

func TestRedactingLogger_LevelFollowsStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := withCapturedLogger(t)

	r := gin.New()
	r.Use(RedactingLogger(RedactOptions{}))
	r.GET("/warn", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/error", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/warn", nil))
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("expected warn for 4xx, got: %s", buf.String())
	}

	buf.Reset()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/error", nil))
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("expected error for 5xx, got: %s", buf.String())
	}
}
