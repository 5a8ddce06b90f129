package middleware

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/gin-gonic/gin"
)

func (m Middleware) RateLimiterMiddleware(ctx *gin.Context) {
	if m.rateLimiter == nil {
		ctx.Next()
		return
	}

	allowed, retryAfter := m.rateLimiter.Allow(ctx.ClientIP())
	if !allowed {
		ctx.Header("Retry-After", fmt.Sprintf("%d", int(math.Ceil(retryAfter.Seconds()))))
		util.ResponseFailed(ctx, http.StatusTooManyRequests, "Too many requests", util.GenerateErrorMessages(errors.New("rate limit exceeded, try again later"), "rateLimit"), nil)
		return
	}

	ctx.Next()
}
