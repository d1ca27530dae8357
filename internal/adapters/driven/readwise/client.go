package readwise

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driven"
	"github.com/marginalia-labs/marginalia-cli/internal/logger"
)

const (
	// DefaultBaseURL is the Readwise API v2 root.
	DefaultBaseURL = "https://readwise.io/api/v2"

	// DefaultTimeout is the HTTP request timeout. Expiry surfaces as a
	// transport error and aborts the sync like any other fetch failure.
	DefaultTimeout = 30 * time.Second

	// maxBodySnippet caps how much of an error response body is kept
	// for the error message.
	maxBodySnippet = 512
)

// Ensure Client implements the interface.
var _ driven.HighlightSource = (*Client)(nil)

// Client is a Readwise API client.
type Client struct {
	baseURL string
	tokens  driven.TokenProvider
	limiter *RateLimiter

	mu         sync.Mutex
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// NewClient creates a Readwise client with a token provider.
// The HTTP client is initialised lazily so the token is only read when
// a request is actually made.
func NewClient(tokens driven.TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		tokens:  tokens,
		limiter: NewRateLimiter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ensureClient initialises the HTTP client if not already done.
// Readwise authenticates with "Authorization: Token <t>", which the
// oauth2 transport produces when the token type is set to "Token".
func (c *Client) ensureClient(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.httpClient != nil {
		return nil
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token, TokenType: "Token"},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = DefaultTimeout
	c.httpClient = tc

	return nil
}

// listResponse is the Readwise list envelope.
type listResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Validate checks the token against the auth endpoint.
func (c *Client) Validate(ctx context.Context) error {
	if err := c.ensureClient(ctx); err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth check: %w", err)
	}
	defer resp.Body.Close()
	c.limiter.UpdateFromResponse(resp)

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return c.responseError(resp)
	}
	return nil
}

// Books returns up to pageSize books.
func (c *Client) Books(ctx context.Context, pageSize int) ([]domain.Book, error) {
	var list listResponse[domain.Book]
	if err := c.getList(ctx, "/books/", pageSize, &list); err != nil {
		return nil, err
	}
	if list.Next != nil {
		logger.Warn("Account has more than %d books, extra pages are ignored", pageSize)
	}
	return list.Results, nil
}

// Highlights returns up to pageSize highlights in service order.
func (c *Client) Highlights(ctx context.Context, pageSize int) ([]domain.Highlight, error) {
	var list listResponse[domain.Highlight]
	if err := c.getList(ctx, "/highlights/", pageSize, &list); err != nil {
		return nil, err
	}
	if list.Next != nil {
		logger.Warn("Account has more than %d highlights, extra pages are ignored", pageSize)
	}
	return list.Results, nil
}

// getList performs one paged GET and decodes the list envelope.
func (c *Client) getList(ctx context.Context, path string, pageSize int, out any) error {
	if err := c.ensureClient(ctx); err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	q := url.Values{"page_size": {strconv.Itoa(pageSize)}}
	endpoint := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	logger.Debug("GET %s", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	c.limiter.UpdateFromResponse(resp)

	if resp.StatusCode != http.StatusOK {
		return c.responseError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// responseError converts a non-2xx response into a typed error.
func (c *Client) responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippet))

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{RetryAfter: retryAfter(resp)}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    string(body),
		URL:        resp.Request.URL.Redacted(),
	}
}
