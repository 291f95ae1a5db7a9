package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// attemptLimiter throttles repeated login failures per client key. Entries
// expire once they fall outside the window; expiry happens lazily on the
// next check for the same key.
type attemptLimiter struct {
	mu       sync.Mutex
	failures map[string][]time.Time
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{failures: make(map[string][]time.Time)}
}

func (limiter *attemptLimiter) addFailure(key string, at time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	limiter.failures[key] = append(limiter.failures[key], at)
}

func (limiter *attemptLimiter) tooManyRecent(key string, now time.Time, limit int, window time.Duration) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.expireLocked(key, now.Add(-window))
	return len(limiter.failures[key]) >= limit
}

func (limiter *attemptLimiter) reset(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.failures, key)
}

// expireLocked drops failures at or before cutoff. Caller holds the lock.
func (limiter *attemptLimiter) expireLocked(key string, cutoff time.Time) {
	recorded := limiter.failures[key]
	kept := recorded[:0]
	for _, at := range recorded {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		delete(limiter.failures, key)
		return
	}
	limiter.failures[key] = kept
}

func requestLimiterKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
