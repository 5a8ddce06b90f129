package ratelimiter

import (
	"sync"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/config"
	"go.uber.org/zap"
)

type window struct {
	start time.Time
	count int
}

// FixedWindowRateLimiter counts requests per key inside fixed windows of cfg.TimeFrame.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	frame   time.Duration
	enabled bool
	now     func() time.Time
	logger  *zap.SugaredLogger
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		windows: make(map[string]*window),
		limit:   cfg.RequestsPerTimeFrame,
		frame:   cfg.TimeFrame,
		enabled: cfg.Enabled && cfg.RequestsPerTimeFrame > 0 && cfg.TimeFrame > 0,
		now:     time.Now,
		logger:  logger,
	}
}

// Allow records a request for key. When the limit is hit it returns false and how long
// until the window resets.
func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	if !rl.enabled {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.frame {
		if len(rl.windows) > 10_000 {
			rl.sweep(now)
		}
		rl.windows[key] = &window{start: now, count: 1}
		return true, 0
	}

	if w.count >= rl.limit {
		retryAfter := w.start.Add(rl.frame).Sub(now)
		rl.logger.Debugf("Rate limit exceeded for %s, retry after %s", key, retryAfter)
		return false, retryAfter
	}

	w.count++
	return true, 0
}

// sweep drops expired windows. Caller holds mu.
func (rl *FixedWindowRateLimiter) sweep(now time.Time) {
	for key, w := range rl.windows {
		if now.Sub(w.start) >= rl.frame {
			delete(rl.windows, key)
		}
	}
}
