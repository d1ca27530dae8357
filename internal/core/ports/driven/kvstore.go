package driven

import "context"

// KeyValueStore is the local persistence surface: an opaque
// asynchronous get/put store keyed by string. It holds two independent
// entries, the raw access token and the JSON-serialised library cache.
// The store is non-transactional; callers serialise their own writes.
type KeyValueStore interface {
	// Get returns the value for a key.
	// Returns domain.ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Put stores or replaces the value for a key.
	Put(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
