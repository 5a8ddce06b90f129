package middleware

import (
	appcontext "github.com/SeakMengs/FacultyCert/internal/app_context"
	ratelimiter "github.com/SeakMengs/FacultyCert/internal/rate_limiter"
)

// Middleware carries the shared dependencies of the auth, permission and
// rate limit handlers.
type Middleware struct {
	rateLimiter *ratelimiter.FixedWindowRateLimiter
	app         *appcontext.Application
}

// A nil limiter gets one built from the application's rate limiter config.
func NewMiddleware(app *appcontext.Application, rateLimiter *ratelimiter.FixedWindowRateLimiter) *Middleware {
	if rateLimiter == nil {
		rateLimiter = ratelimiter.NewRateLimiter(app.Config.RateLimiter, app.Logger)
	}
	return &Middleware{app: app, rateLimiter: rateLimiter}
}
