// Package domain defines the core business entities for Marginalia.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Book: A source work fetched from the highlights service
//   - Highlight: A captured excerpt linked to its Book
//   - BookEntry: The per-book aggregate (book + highlights + import state)
//   - Library: The keyed collection of aggregates, the unit of caching
//   - Block: A content block destined for a notes target
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
