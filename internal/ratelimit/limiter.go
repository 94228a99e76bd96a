package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter paces outbound requests to a rate limited provider
type Limiter interface {
	// Wait blocks until a request may proceed or ctx is done
	Wait(ctx context.Context) error
}

type limiter struct {
	name    string
	limiter *rate.Limiter
}

// NewLimiter creates a token bucket limiter for a provider.
// A non-positive rps disables limiting.
func NewLimiter(name string, rps float64, burst int) Limiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}

	return &limiter{
		name:    name,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Wait blocks until a request may proceed or ctx is done
func (l *limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s rate limiter: %w", l.name, err)
	}
	return nil
}
