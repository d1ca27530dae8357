package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driven/storage/memory"
	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

// mockSource implements driven.HighlightSource for testing.
type mockSource struct {
	books         []domain.Book
	booksErr      error
	highlights    []domain.Highlight
	highlightsErr error

	// booksStarted and booksRelease let tests hold a sync mid-flight.
	booksStarted chan struct{}
	booksRelease chan struct{}
}

func (m *mockSource) Validate(_ context.Context) error { return nil }

func (m *mockSource) Books(ctx context.Context, _ int) ([]domain.Book, error) {
	if m.booksStarted != nil {
		close(m.booksStarted)
	}
	if m.booksRelease != nil {
		select {
		case <-m.booksRelease:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.books, m.booksErr
}

func (m *mockSource) Highlights(_ context.Context, _ int) ([]domain.Highlight, error) {
	return m.highlights, m.highlightsErr
}

func newTestEngine(source *mockSource) (*Engine, *memory.KeyValueStore) {
	store := memory.NewKeyValueStore()
	library := NewLibrary(store)
	return NewEngine(source, library, 0), store
}

func TestEngine_SyncFoldsAndPersists(t *testing.T) {
	source := &mockSource{
		books: []domain.Book{{ID: 1, Title: "Walden"}},
		highlights: []domain.Highlight{
			{ID: 10, BookID: 1, Text: "first"},
			{ID: 11, BookID: 1, Text: "second"},
		},
	}
	engine, store := newTestEngine(source)

	lib, err := engine.Sync(context.Background())

	require.NoError(t, err)
	require.Len(t, lib, 1)
	entry := lib.Entry(1)
	require.NotNil(t, entry)
	assert.Len(t, entry.Highlights, 2)
	assert.False(t, entry.Imported)

	// The library must be persisted under the fixed cache key.
	raw, err := store.Get(context.Background(), LibraryKey)
	require.NoError(t, err)
	assert.Contains(t, raw, "Walden")

	status := engine.Status()
	assert.False(t, status.Running)
	assert.Equal(t, 1, status.Books)
	assert.Equal(t, 2, status.Highlights)
	assert.Empty(t, status.LastError)
	assert.False(t, status.LastSync.IsZero())
}

func TestEngine_BooksFailureWritesNothing(t *testing.T) {
	source := &mockSource{booksErr: errors.New("401 unauthorized")}
	engine, store := newTestEngine(source)

	lib, err := engine.Sync(context.Background())

	require.Error(t, err)
	assert.Nil(t, lib)
	assert.Equal(t, 0, store.Len(), "a failed sync must not write the cache")
	assert.Contains(t, engine.Status().LastError, "401")
}

func TestEngine_HighlightsFailureWritesNothing(t *testing.T) {
	source := &mockSource{
		books:         []domain.Book{{ID: 1}},
		highlightsErr: errors.New("boom"),
	}
	engine, store := newTestEngine(source)

	lib, err := engine.Sync(context.Background())

	require.Error(t, err)
	assert.Nil(t, lib)
	assert.Equal(t, 0, store.Len(),
		"a highlights failure after a books success must leave the previous cache untouched")
}

func TestEngine_PreservesImportedAcrossSyncs(t *testing.T) {
	source := &mockSource{
		books:      []domain.Book{{ID: 1, Title: "Walden"}},
		highlights: []domain.Highlight{{ID: 10, BookID: 1, Text: "h"}},
	}
	engine, _ := newTestEngine(source)
	ctx := context.Background()

	_, err := engine.Sync(ctx)
	require.NoError(t, err)
	require.NoError(t, engine.library.MarkImported(ctx, 1))

	lib, err := engine.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, lib.Entry(1).Imported, "imported flag must survive a refresh")
}

func TestEngine_SecondSyncWhileRunningIsRejected(t *testing.T) {
	source := &mockSource{
		booksStarted: make(chan struct{}),
		booksRelease: make(chan struct{}),
		books:        []domain.Book{{ID: 1}},
		highlights:   []domain.Highlight{{ID: 10, BookID: 1}},
	}
	engine, _ := newTestEngine(source)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = engine.Sync(context.Background())
	}()

	<-source.booksStarted
	_, err := engine.Sync(context.Background())
	assert.ErrorIs(t, err, domain.ErrSyncInProgress)

	close(source.booksRelease)
	wg.Wait()
}

func TestEngine_CancelDiscardsResult(t *testing.T) {
	source := &mockSource{
		booksStarted: make(chan struct{}),
		booksRelease: make(chan struct{}),
		books:        []domain.Book{{ID: 1}},
		highlights:   []domain.Highlight{{ID: 10, BookID: 1}},
	}
	engine, store := newTestEngine(source)

	done := make(chan error, 1)
	go func() {
		_, err := engine.Sync(context.Background())
		done <- err
	}()

	<-source.booksStarted
	engine.Cancel()
	close(source.booksRelease)

	err := <-done
	require.Error(t, err)
	assert.Equal(t, 0, store.Len(), "a cancelled sync must not write the cache")
}

func TestEngine_CorruptCacheDoesNotBlockSync(t *testing.T) {
	source := &mockSource{
		books:      []domain.Book{{ID: 1, Title: "Walden"}},
		highlights: []domain.Highlight{{ID: 10, BookID: 1}},
	}
	engine, store := newTestEngine(source)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, LibraryKey, "{not json"))

	lib, err := engine.Sync(ctx)

	require.NoError(t, err)
	require.Len(t, lib, 1)
	assert.False(t, lib.Entry(1).Imported, "flags from an unreadable cache are lost")
}
