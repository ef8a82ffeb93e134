package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizapi/security"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func limitedRouter(counter Counter, max int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(counter, max, window, security.NopLogger()))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func get(router *gin.Engine, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remote
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	router := limitedRouter(NewMemoryCounter(), 3, time.Hour)

	for i := 0; i < 3; i++ {
		if w := get(router, "10.0.0.1:1234"); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}

	w := get(router, "10.0.0.1:1234")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("4th request: status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After header")
	}
	if w.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("X-RateLimit-Remaining = %q, want 0", w.Header().Get("X-RateLimit-Remaining"))
	}

	// A different address has its own window.
	if w := get(router, "10.0.0.2:1234"); w.Code != http.StatusOK {
		t.Errorf("other address: status = %d, want 200", w.Code)
	}
}

func TestRateLimitWindowExpiry(t *testing.T) {
	router := limitedRouter(NewMemoryCounter(), 1, 30*time.Millisecond)

	if w := get(router, "10.0.0.3:1234"); w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", w.Code)
	}
	if w := get(router, "10.0.0.3:1234"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status = %d, want 429", w.Code)
	}

	time.Sleep(40 * time.Millisecond)

	if w := get(router, "10.0.0.3:1234"); w.Code != http.StatusOK {
		t.Errorf("after window: status = %d, want 200", w.Code)
	}
}

func TestRedisCounter(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	counter := NewRedisCounter(client)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, ttl, err := counter.Incr(ctx, "ratelimit:1.2.3.4", time.Hour)
		if err != nil {
			t.Fatalf("Incr() error = %v", err)
		}
		if count != want {
			t.Errorf("count = %d, want %d", count, want)
		}
		if ttl <= 0 || ttl > time.Hour {
			t.Errorf("ttl = %v, want within window", ttl)
		}
	}

	// The counter resets once the window elapses.
	srv.FastForward(time.Hour + time.Second)
	count, _, err := counter.Incr(ctx, "ratelimit:1.2.3.4", time.Hour)
	if err != nil {
		t.Fatalf("Incr() after expiry error = %v", err)
	}
	if count != 1 {
		t.Errorf("count after expiry = %d, want 1", count)
	}
}

func TestRedisCounterHealsMissingTTL(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	counter := NewRedisCounter(client)

	// A counter key stranded without a TTL must pick one up on the next
	// increment instead of throttling the address forever.
	srv.Set("ratelimit:5.6.7.8", "5")

	count, ttl, err := counter.Incr(context.Background(), "ratelimit:5.6.7.8", time.Hour)
	if err != nil {
		t.Fatalf("Incr() error = %v", err)
	}
	if count != 6 {
		t.Errorf("count = %d, want 6", count)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("ttl = %v, want within window", ttl)
	}
	if srv.TTL("ratelimit:5.6.7.8") <= 0 {
		t.Error("key still has no expiry")
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	router := limitedRouter(NewRedisCounter(client), 1, time.Hour)

	srv.Close()

	if w := get(router, "10.0.0.4:1234"); w.Code != http.StatusOK {
		t.Errorf("status with broken counter = %d, want 200", w.Code)
	}
}
