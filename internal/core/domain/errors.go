package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoToken indicates an operation needed the access token but
	// none has been saved yet.
	ErrNoToken = errors.New("no access token configured")

	// ErrSyncInProgress indicates a sync is already running.
	ErrSyncInProgress = errors.New("sync in progress")

	// ErrSyncSuperseded indicates a sync finished after being
	// cancelled or replaced; its result was discarded unwritten.
	ErrSyncSuperseded = errors.New("sync superseded")

	// ErrPageNotEmpty indicates the export target page already has
	// content. The exporter leaves existing notes untouched and adds
	// only a warning block.
	ErrPageNotEmpty = errors.New("target page already has content")

	// ErrAuthInvalid indicates the highlights service rejected the
	// access token.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrUnsupportedTarget indicates an unknown notes target name.
	ErrUnsupportedTarget = errors.New("unsupported notes target")
)

// CacheError indicates a cache entry was present but unreadable.
// The stored value is reported by key, never by content, since the
// token lives in the same store.
type CacheError struct {
	// Key is the store key that failed to decode.
	Key string

	// Err is the underlying decode failure.
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache entry %q unreadable: %v", e.Key, e.Err)
}

// Unwrap returns the underlying decode failure.
func (e *CacheError) Unwrap() error {
	return e.Err
}
