// Package driven defines the driven (outbound) ports for Marginalia.
//
// Driven ports are interfaces the core calls out through: the remote
// highlights service, the local key-value store, the notes target and
// the configuration store. Adapters under internal/adapters/driven
// implement them; the core never imports an adapter.
package driven
