package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
	"golang.org/x/time/rate"
)

// Rate limit buckets. A request is charged to every bucket whose middleware it passes.
const (
	BucketAPI     = "api"
	BucketReports = "reports"
)

// BucketLimit is the token bucket for one class of endpoints
type BucketLimit struct {
	RequestsPerSecond float64
	Burst             int
}

// RateLimiterConfig holds configuration for the rate limiter
type RateLimiterConfig struct {
	Buckets         map[string]BucketLimit
	CleanupInterval time.Duration // how often idle tenants are dropped
	EntryTTL        time.Duration // how long a tenant may stay idle
}

// DefaultRateLimiterConfig allows 10 rps (burst 20) on the API and 1 rps (burst 5) on
// reports, which scan the whole ledger.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Buckets: map[string]BucketLimit{
			BucketAPI:     {RequestsPerSecond: 10, Burst: 20},
			BucketReports: {RequestsPerSecond: 1, Burst: 5},
		},
		CleanupInterval: 5 * time.Minute,
		EntryTTL:        10 * time.Minute,
	}
}

type limiterKey struct {
	tenantID uuid.UUID
	bucket   string
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TenantRateLimiter keeps one token bucket per tenant and bucket name so a busy
// tenant cannot starve the others.
type TenantRateLimiter struct {
	limiters    map[limiterKey]*rateLimiterEntry
	mu          sync.Mutex
	buckets     map[string]BucketLimit
	cleanupTick time.Duration
	entryTTL    time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewTenantRateLimiter creates the limiter and starts its cleanup goroutine; call Stop to end it
func NewTenantRateLimiter(cfg RateLimiterConfig) *TenantRateLimiter {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	rl := &TenantRateLimiter{
		limiters:    make(map[limiterKey]*rateLimiterEntry),
		buckets:     cfg.Buckets,
		cleanupTick: cfg.CleanupInterval,
		entryTTL:    cfg.EntryTTL,
		stop:        make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// allow takes one token from the tenant's bucket. Unknown buckets are unlimited.
func (rl *TenantRateLimiter) allow(tenantID uuid.UUID, bucket string) (bool, int, int) {
	limit, ok := rl.buckets[bucket]
	if !ok {
		return true, 0, 0
	}

	key := limiterKey{tenantID: tenantID, bucket: bucket}
	now := time.Now()

	rl.mu.Lock()
	entry, exists := rl.limiters[key]
	if !exists {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(rate.Limit(limit.RequestsPerSecond), limit.Burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = now
	rl.mu.Unlock()

	allowed := entry.limiter.AllowN(now, 1)
	return allowed, limit.Burst, int(entry.limiter.TokensAt(now))
}

func (rl *TenantRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stop:
			return
		}
	}
}

// Stop ends the background cleanup goroutine
func (rl *TenantRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *TenantRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.entryTTL)
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// Middleware charges each request to the tenant's token bucket for the named bucket.
// It must run after AuthMiddleware; requests without a tenant are not limited.
func (rl *TenantRateLimiter) Middleware(bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := GetTenantID(c)
		if tenantID == uuid.Nil {
			c.Next()
			return
		}

		allowed, burst, remaining := rl.allow(tenantID, bucket)
		if burst > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(burst))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(max(remaining, 0)))
		}
		if !allowed {
			c.Header("Retry-After", "1")
			response.TooManyRequests(c, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// Stats returns current statistics about the rate limiter
func (rl *TenantRateLimiter) Stats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	tenants := make(map[uuid.UUID]struct{})
	for key := range rl.limiters {
		tenants[key.tenantID] = struct{}{}
	}

	buckets := make(map[string]interface{}, len(rl.buckets))
	for name, b := range rl.buckets {
		buckets[name] = map[string]interface{}{
			"rate_per_second": b.RequestsPerSecond,
			"burst_size":      b.Burst,
		}
	}

	return map[string]interface{}{
		"active_tenants":      len(tenants),
		"buckets":             buckets,
		"cleanup_interval_ms": rl.cleanupTick.Milliseconds(),
		"entry_ttl_ms":        rl.entryTTL.Milliseconds(),
	}
}
