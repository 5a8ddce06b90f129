package ratelimiter

import (
	"github.com/SeakMengs/FacultyCert/internal/config"
	"go.uber.org/zap"
)

func NewRateLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	// For unit test
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return NewFixedWindowLimiter(cfg, logger)
}
