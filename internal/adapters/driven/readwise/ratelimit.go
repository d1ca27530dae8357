package readwise

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ReadwiseRateLimit is the documented general rate limit
	// (240 requests per minute).
	ReadwiseRateLimit = 240

	// ProactiveRate is the proactive throttle rate in requests per
	// second: half the documented per-second allowance, leaving
	// headroom for other clients on the same token.
	ProactiveRate = ReadwiseRateLimit / 60.0 / 2
)

// RateLimiter combines proactive throttling with reactive Retry-After
// handling for the Readwise API.
type RateLimiter struct {
	mu      sync.Mutex
	bucket  *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a rate limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(ProactiveRate), 1),
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	delay := time.Until(retryAt)
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// UpdateFromResponse records a Retry-After hint from a 429 response.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp.StatusCode != http.StatusTooManyRequests {
		return
	}
	v := resp.Header.Get("Retry-After")
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = time.Now().Add(time.Duration(secs) * time.Second)
}
