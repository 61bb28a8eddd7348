package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsAndPathFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/posts/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "hello")
	})

	// Baselines before we hit the routes (to avoid interference from other tests)
	baseOK := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/posts/:id", "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/p1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /posts/p1 -> %d", w.Code)
	}

	// No match → fallback to the raw URL path label.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /does-not-exist -> %d", w.Code)
	}

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/posts/:id", "200")); got != baseOK+1 {
		t.Fatalf("matched-route counter = %v, want %v", got, baseOK+1)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404")); got != base404+1 {
		t.Fatalf("fallback counter = %v, want %v", got, base404+1)
	}
}

func TestMetrics_AuthFailureCounter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/auth/me", func(c *gin.Context) {
		c.Status(http.StatusUnauthorized)
	})
	r.GET("/open", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	base := testutil.ToFloat64(authFailures.WithLabelValues("/auth/me"))
	baseOpen := testutil.ToFloat64(authFailures.WithLabelValues("/open"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))

	if got := testutil.ToFloat64(authFailures.WithLabelValues("/auth/me")); got != base+1 {
		t.Fatalf("auth failure counter = %v, want %v", got, base+1)
	}
	if got := testutil.ToFloat64(authFailures.WithLabelValues("/open")); got != baseOpen {
		t.Fatalf("auth failure counter moved for a 200: %v", got)
	}
}
