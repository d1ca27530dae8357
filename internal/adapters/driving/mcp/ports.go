package mcp

import (
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library provides access to the cached books and highlights.
	Library driving.LibraryService

	// Sync runs the fetch-fold-persist cycle.
	Sync driving.SyncService

	// Export writes highlights into the notes target.
	Export driving.ExportService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	// Sync and Export are optional; their tools are no-ops without them
	return nil
}
