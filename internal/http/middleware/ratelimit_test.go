package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", rl.Handler(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func ping(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "198.51.100.7:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3, KeyByClientIP())
	r := limitedRouter(rl)
	for i := 0; i < 3; i++ {
		if w := ping(r); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, KeyByClientIP())
	r := limitedRouter(rl)

	if w := ping(r); w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", w.Code)
	}
	w := ping(r)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status = %d, want 429", w.Code)
	}
	if ra := w.Header().Get("Retry-After"); ra == "" || ra == "0" {
		t.Fatalf("Retry-After = %q, want a positive number of seconds", ra)
	}
	if lim := w.Header().Get("X-RateLimit-Limit"); lim != "1" {
		t.Fatalf("X-RateLimit-Limit = %q, want 1", lim)
	}
	if code := firstCode(t, w); code != "rate_limited" {
		t.Fatalf("code = %q", code)
	}
}

func TestRateLimiter_BurstCoercedToOne(t *testing.T) {
	rl := NewRateLimiter(1, 0, KeyByClientIP())
	if rl.burst != 1 {
		t.Fatalf("burst = %d, want 1", rl.burst)
	}
}

func TestRateLimiter_SeparateKeysSeparateBuckets(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, KeyByClientIP())
	r := limitedRouter(rl)

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("198.51.100.7:1"); code != http.StatusOK {
		t.Fatalf("first client: %d", code)
	}
	if code := send("198.51.100.7:1"); code != http.StatusTooManyRequests {
		t.Fatalf("first client repeat: %d, want 429", code)
	}
	if code := send("203.0.113.9:1"); code != http.StatusOK {
		t.Fatalf("second client should have its own bucket: %d", code)
	}
}

func TestKeyByUserOrIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	keyFn := KeyByUserOrIP()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "198.51.100.7:1234"
	if key := keyFn(c); key != "ip:198.51.100.7" {
		t.Fatalf("anonymous key = %q", key)
	}

	c.Set("userID", "u1")
	if key := keyFn(c); key != "user:u1" {
		t.Fatalf("authenticated key = %q", key)
	}
}

func TestRateLimiter_JanitorEvictsIdle(t *testing.T) {
	rl := NewRateLimiter(1, 1, KeyByClientIP())
	rl.ttl = time.Millisecond

	rl.getVisitor("ip:1.2.3.4")
	rl.mu.Lock()
	if len(rl.visitors) != 1 {
		rl.mu.Unlock()
		t.Fatalf("visitors = %d, want 1", len(rl.visitors))
	}
	rl.mu.Unlock()

	stop := rl.StartJanitor(5 * time.Millisecond)
	defer stop()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		rl.mu.Lock()
		n := len(rl.visitors)
		rl.mu.Unlock()
		if n == 0 {
			// stop twice to check the sync.Once guard
			stop()
			stop()
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("idle visitor was never evicted")
}
