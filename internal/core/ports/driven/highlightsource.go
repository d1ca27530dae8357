package driven

import (
	"context"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

// TokenProvider supplies the access token for the highlights service.
// Implementations return domain.ErrNoToken when none has been saved.
type TokenProvider interface {
	// Token returns the raw access token.
	Token(ctx context.Context) (string, error)
}

// HighlightSource fetches books and highlights from the remote
// highlights service. Both listings are single-page: the service is
// asked for up to pageSize items and anything beyond that is truncated
// silently.
type HighlightSource interface {
	// Validate checks that the source is reachable and the token is
	// accepted. Returns domain.ErrAuthInvalid on a rejected token.
	Validate(ctx context.Context) error

	// Books returns up to pageSize books.
	Books(ctx context.Context, pageSize int) ([]domain.Book, error)

	// Highlights returns up to pageSize highlights in service order.
	Highlights(ctx context.Context, pageSize int) ([]domain.Highlight, error)
}
