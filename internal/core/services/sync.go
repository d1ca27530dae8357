package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driven"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driving"
	"github.com/marginalia-labs/marginalia-cli/internal/logger"
)

// DefaultPageSize is the single-page item cap for both listings.
// Accounts with more books or highlights than this are truncated
// silently.
const DefaultPageSize = 1000

// Ensure Engine implements the interface.
var _ driving.SyncService = (*Engine)(nil)

// Engine runs the sync cycle: load the prior cache, fetch books, fetch
// highlights, fold into a library, persist.
//
// The books call must complete before the highlights call begins since
// the fold needs the book lookup table. Only one sync runs at a time;
// the generation counter ensures a cancelled or superseded run never
// overwrites a newer cache write.
type Engine struct {
	source   driven.HighlightSource
	library  *Library
	pageSize int

	mu         sync.Mutex
	running    bool
	generation uint64
	cancel     context.CancelFunc
	status     driving.SyncStatus
}

// NewEngine creates a sync engine. pageSize values below 1 fall back
// to DefaultPageSize.
func NewEngine(source driven.HighlightSource, library *Library, pageSize int) *Engine {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Engine{
		source:   source,
		library:  library,
		pageSize: pageSize,
	}
}

// Sync fetches, folds and persists the library.
// A second call while one is in flight returns domain.ErrSyncInProgress.
func (e *Engine) Sync(ctx context.Context) (domain.Library, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil, domain.ErrSyncInProgress
	}
	e.running = true
	e.generation++
	gen := e.generation
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	// Clear the previous error at the start of each attempt.
	e.status = driving.SyncStatus{Running: true, LastSync: e.status.LastSync}
	e.mu.Unlock()
	defer cancel()

	lib, err := e.run(ctx, gen)

	e.mu.Lock()
	e.running = false
	e.status.Running = false
	if gen == e.generation {
		if err != nil {
			e.status.LastError = err.Error()
		} else {
			e.status.LastSync = time.Now()
		}
	}
	e.mu.Unlock()

	return lib, err
}

func (e *Engine) run(ctx context.Context, gen uint64) (domain.Library, error) {
	prev, err := e.library.Cached(ctx)
	if err != nil {
		var cacheErr *domain.CacheError
		if !errors.As(err, &cacheErr) {
			return nil, err
		}
		// An unreadable cache loses imported flags but must not block
		// a fresh sync.
		logger.Warn("Discarding unreadable library cache: %v", err)
		prev = nil
	}

	logger.Info("Fetching up to %d books", e.pageSize)
	books, err := e.source.Books(ctx, e.pageSize)
	if err != nil {
		return nil, fmt.Errorf("fetch books: %w", err)
	}
	e.setProgress(gen, len(books), 0)

	logger.Info("Fetching up to %d highlights", e.pageSize)
	highlights, err := e.source.Highlights(ctx, e.pageSize)
	if err != nil {
		// Abort and leave the previous cache untouched.
		return nil, fmt.Errorf("fetch highlights: %w", err)
	}
	e.setProgress(gen, len(books), len(highlights))

	lib := domain.Fold(books, highlights, prev)

	e.mu.Lock()
	stale := gen != e.generation
	e.mu.Unlock()
	if stale || ctx.Err() != nil {
		return nil, domain.ErrSyncSuperseded
	}

	if err := e.library.Save(ctx, lib); err != nil {
		return nil, err
	}

	logger.Info("Sync complete: %d books, %d highlights, %d aggregates",
		len(books), len(highlights), len(lib))
	return lib, nil
}

// Cancel aborts an in-flight sync. The aborted run's result is
// discarded without a cache write.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.generation++
	if e.cancel != nil {
		e.cancel()
	}
}

// Status returns a snapshot of the current or most recent sync.
func (e *Engine) Status() driving.SyncStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// setProgress updates fetch counts, unless the run has been superseded.
func (e *Engine) setProgress(gen uint64, books, highlights int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.generation {
		return
	}
	e.status.Books = books
	e.status.Highlights = highlights
}
