package driving

import (
	"context"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

// LibraryService provides access to the cached library and the stored
// access token.
type LibraryService interface {
	// Cached returns the last persisted library. Returns nil (and no
	// error) when nothing has been cached yet; returns a
	// *domain.CacheError when the entry is present but unreadable.
	Cached(ctx context.Context) (domain.Library, error)

	// List returns the cached aggregates sorted by descending
	// highlight count.
	List(ctx context.Context) ([]*domain.BookEntry, error)

	// MarkImported flips one entry's imported flag to true and
	// persists the library, without re-syncing.
	MarkImported(ctx context.Context, bookID int64) error

	// SaveToken stores the access token. The token is stored as-is;
	// no shape validation is performed.
	SaveToken(ctx context.Context, token string) error

	// Token returns the stored access token, or domain.ErrNoToken.
	Token(ctx context.Context) (string, error)

	// ClearToken removes the stored access token.
	ClearToken(ctx context.Context) error
}
