package driving

import (
	"context"
	"time"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

// SyncService runs the fetch-fold-persist cycle against the highlights
// service.
type SyncService interface {
	// Sync fetches books and highlights, folds them into a Library,
	// persists it and returns it. Only one sync runs at a time; a
	// second call while one is in flight returns
	// domain.ErrSyncInProgress. On any fetch failure nothing is
	// persisted and the previous cache is left untouched.
	Sync(ctx context.Context) (domain.Library, error)

	// Cancel aborts an in-flight sync, if any. A cancelled sync's
	// result is discarded without a cache write.
	Cancel()

	// Status returns a snapshot of the current or most recent sync.
	Status() SyncStatus
}

// SyncStatus is a snapshot of sync progress for display.
// LastError holds only the most recent failure and is cleared at the
// start of the next attempt.
type SyncStatus struct {
	// Running indicates a sync is currently in flight.
	Running bool

	// Books is the number of books fetched by the current or last run.
	Books int

	// Highlights is the number of highlights fetched.
	Highlights int

	// LastSync is when the last successful sync finished.
	LastSync time.Time

	// LastError describes the most recent failure, empty when the
	// last attempt succeeded.
	LastError string
}
