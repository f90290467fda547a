package middleware

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wellnest-hq/wellness-api/internal/errs"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// RateLimitMiddleware provides redis-backed fixed-window request
// limiting plus rate limit telemetry.
type RateLimitMiddleware struct {
	server *server.Server
}

// NewRateLimitMiddleware constructs a RateLimitMiddleware.
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns a middleware allowing at most max requests per window
// per client IP and route. Counters live in redis; when redis is
// unavailable the limiter fails open so the API keeps serving.
func (r *RateLimitMiddleware) Limit(max int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:%s:%s", c.Path(), c.RealIP())

			count, err := r.server.Redis.Incr(ctx, key).Result()
			if err != nil {
				r.server.Logger.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			if count == 1 {
				r.server.Redis.Expire(ctx, key, window)
			}

			if count > int64(max) {
				r.RecordRateLimitHit(c.Path())
				return errs.NewTooManyRequestsError("Too many requests, please try again later")
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit records a custom New Relic event for a rejected
// request. No-op when New Relic is disabled.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
