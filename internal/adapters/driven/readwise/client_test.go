package readwise

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

// staticTokens implements driven.TokenProvider for testing.
type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(_ context.Context) (string, error) {
	return s.token, s.err
}

func TestClient_BooksDecodesPageAndSendsTokenHeader(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/books/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"count": 2,
			"next": null,
			"previous": null,
			"results": [
				{"id": 1, "title": "Walden", "author": "Thoreau", "num_highlights": 3},
				{"id": 2, "title": "Antifragile", "author": "Taleb", "num_highlights": 1}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(staticTokens{token: "rw_secret"}, WithBaseURL(server.URL))
	books, err := client.Books(context.Background(), 1000)

	require.NoError(t, err)
	assert.Equal(t, "Token rw_secret", gotAuth)
	assert.Equal(t, "page_size=1000", gotQuery)
	require.Len(t, books, 2)
	assert.Equal(t, int64(1), books[0].ID)
	assert.Equal(t, "Walden", books[0].Title)
	assert.Equal(t, 3, books[0].NumHighlights)
}

func TestClient_HighlightsKeepServiceOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/highlights/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"count": 2,
			"results": [
				{"id": 20, "book_id": 1, "text": "second captured, listed first"},
				{"id": 10, "book_id": 1, "text": "first captured, listed second"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(staticTokens{token: "rw_secret"}, WithBaseURL(server.URL))
	highlights, err := client.Highlights(context.Background(), 1000)

	require.NoError(t, err)
	require.Len(t, highlights, 2)
	assert.Equal(t, int64(20), highlights[0].ID)
	assert.Equal(t, int64(10), highlights[1].ID)
}

func TestClient_UnauthorizedMapsToAuthInvalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"Invalid token."}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(staticTokens{token: "bad"}, WithBaseURL(server.URL))
	_, err := client.Books(context.Background(), 1000)

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Invalid token")
}

func TestClient_RateLimitedSurfacesRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "42")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(staticTokens{token: "rw_secret"}, WithBaseURL(server.URL))
	_, err := client.Highlights(context.Background(), 1000)

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))

	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 42*time.Second, rlErr.RetryAfter)
}

func TestClient_ValidateAcceptsNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(staticTokens{token: "rw_secret"}, WithBaseURL(server.URL))
	assert.NoError(t, client.Validate(context.Background()))
}

func TestClient_MissingTokenFailsBeforeAnyRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient(staticTokens{err: domain.ErrNoToken}, WithBaseURL(server.URL))
	_, err := client.Books(context.Background(), 1000)

	assert.ErrorIs(t, err, domain.ErrNoToken)
	assert.Zero(t, requests)
}
