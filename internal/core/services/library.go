package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driven"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driving"
)

// Store keys. The token and the library cache are independent entries
// in the same key-value store.
const (
	// TokenKey holds the raw access token.
	TokenKey = "readwise_token"

	// LibraryKey holds the JSON-serialised library cache.
	LibraryKey = "library"
)

// Ensure Library implements the interfaces.
var (
	_ driving.LibraryService = (*Library)(nil)
	_ driven.TokenProvider   = (*Library)(nil)
)

// Library provides cache and token access over the key-value store.
// It also acts as the TokenProvider for the highlights source.
type Library struct {
	store driven.KeyValueStore
}

// NewLibrary creates a library service over the given store.
func NewLibrary(store driven.KeyValueStore) *Library {
	return &Library{store: store}
}

// Cached returns the last persisted library.
// Absence is not an error; an unreadable entry is a *domain.CacheError.
func (l *Library) Cached(ctx context.Context) (domain.Library, error) {
	raw, err := l.store.Get(ctx, LibraryKey)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}

	var lib domain.Library
	if err := json.Unmarshal([]byte(raw), &lib); err != nil {
		return nil, &domain.CacheError{Key: LibraryKey, Err: err}
	}
	return lib, nil
}

// Save persists the library verbatim under the fixed cache key.
func (l *Library) Save(ctx context.Context, lib domain.Library) error {
	raw, err := json.Marshal(lib)
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	if err := l.store.Put(ctx, LibraryKey, string(raw)); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// List returns the cached aggregates sorted by descending highlight
// count.
func (l *Library) List(ctx context.Context) ([]*domain.BookEntry, error) {
	lib, err := l.Cached(ctx)
	if err != nil {
		return nil, err
	}
	return lib.Sorted(), nil
}

// MarkImported flips one entry's imported flag and persists the
// library. The flag is monotonic: marking an already-imported entry is
// a no-op, not an error.
func (l *Library) MarkImported(ctx context.Context, bookID int64) error {
	lib, err := l.Cached(ctx)
	if err != nil {
		return err
	}
	entry := lib.Entry(bookID)
	if entry == nil {
		return fmt.Errorf("book %d: %w", bookID, domain.ErrNotFound)
	}
	if entry.Imported {
		return nil
	}
	entry.Imported = true
	return l.Save(ctx, lib)
}

// SaveToken stores the access token under its own key.
func (l *Library) SaveToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("empty token: %w", domain.ErrInvalidInput)
	}
	return l.store.Put(ctx, TokenKey, token)
}

// Token returns the stored access token.
func (l *Library) Token(ctx context.Context) (string, error) {
	token, err := l.store.Get(ctx, TokenKey)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return "", domain.ErrNoToken
	}
	return token, nil
}

// ClearToken removes the stored access token.
func (l *Library) ClearToken(ctx context.Context) error {
	return l.store.Delete(ctx, TokenKey)
}
