package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"quizapi/response"
	"quizapi/security"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Counter increments the fixed-window request count for a key and reports
// the count together with the time left in the current window.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

// RedisCounter backs the limiter with an atomic INCR + EXPIRE, shared
// across processes.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	// One pipelined round trip. ExpireNX on every call also heals a key
	// left without a TTL by an interrupted earlier increment.
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	ttl := ttlCmd.Val()
	if ttl < 0 {
		ttl = window
	}
	return incr.Val(), ttl, nil
}

// MemoryCounter is the single-process fallback: a mutex-guarded map with
// window expiry by timestamp.
type MemoryCounter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
}

type windowEntry struct {
	count int64
	reset time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{entries: map[string]*windowEntry{}}
}

func (m *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	entry := m.entries[key]
	if entry == nil || now.After(entry.reset) {
		entry = &windowEntry{reset: now.Add(window)}
		m.entries[key] = entry
	}
	entry.count++

	if len(m.entries) > 4096 {
		m.prune(now)
	}
	return entry.count, entry.reset.Sub(now), nil
}

func (m *MemoryCounter) prune(now time.Time) {
	for key, entry := range m.entries {
		if now.After(entry.reset) {
			delete(m.entries, key)
		}
	}
}

// RateLimit caps requests per client address within a fixed window. The
// limiter is best-effort: a broken counter lets the request through rather
// than taking the API down.
func RateLimit(counter Counter, max int, window time.Duration, audit *security.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		count, ttl, err := counter.Incr(c.Request.Context(), "ratelimit:"+ip, window)
		if err != nil {
			audit.DatabaseError(err)
			c.Next()
			return
		}

		remaining := int64(max) - count
		if remaining < 0 {
			remaining = 0
		}
		retryAfter := int(math.Ceil(ttl.Seconds()))

		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > int64(max) {
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			audit.RateLimitExceeded(ip)
			response.Abort(c, http.StatusTooManyRequests, "Rate limit exceeded",
				gin.H{"retry_after": retryAfter})
			return
		}

		c.Next()
	}
}
