// Package services implements the driving ports over the driven ports.
//
// Three services make up the core:
//
//   - Library: cache and token access over the key-value store
//   - Engine: the sync cycle (fetch books + highlights, fold, persist)
//   - Exporter: block building and insertion into the notes target
//
// Services hold no domain state of their own beyond sync progress;
// the library lives in the store and is passed by value.
package services
