package model

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter throttles inference calls with a token bucket. Providers
// meter requests per second; waiting here is cheaper than burning a
// whole pipeline run on a 429.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter allowing rps requests per second
// with the given burst size.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Wait blocks until a request slot is available or the context is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
