package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = time.Hour

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// attemptLimiter keeps one token bucket per key. A bucket refills one token
// every interval up to burst tokens.
type attemptLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	burst    int
	entries  map[string]*limiterEntry
}

func newAttemptLimiter(interval time.Duration, burst int) *attemptLimiter {
	return &attemptLimiter{
		interval: interval,
		burst:    burst,
		entries:  make(map[string]*limiterEntry),
	}
}

func (limiter *attemptLimiter) allow(key string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.pruneLocked(now)
	entry, ok := limiter.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Every(limiter.interval), limiter.burst)}
		limiter.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (limiter *attemptLimiter) reset(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.entries, key)
}

func (limiter *attemptLimiter) pruneLocked(now time.Time) {
	threshold := now.Add(-limiterIdleTTL)
	for key, entry := range limiter.entries {
		if entry.lastSeen.Before(threshold) {
			delete(limiter.entries, key)
		}
	}
}

func requestLimiterKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
