// Package sqlite provides the SQLite-backed key-value store.
//
// A single kv table holds the two persisted entries: the raw access
// token and the JSON-serialised library cache. The database lives in
// the Marginalia data directory and uses WAL mode.
package sqlite
