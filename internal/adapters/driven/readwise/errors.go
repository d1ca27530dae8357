package readwise

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

// APIError represents a Readwise API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("readwise: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap maps authentication failures onto the domain sentinel so
// callers can match with errors.Is(err, domain.ErrAuthInvalid).
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return domain.ErrAuthInvalid
	}
	return nil
}

// RateLimitError represents a 429 response.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("readwise: rate limit exceeded, retry after %s", e.RetryAfter)
}

// IsUnauthorized checks if the error indicates an authentication
// failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrAuthInvalid)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// retryAfter parses the Retry-After header in seconds.
// Falls back to one minute when absent or unparsable.
func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Minute
}
