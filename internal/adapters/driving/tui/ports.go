// Package tui provides an interactive terminal user interface for marginalia.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driven"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library provides access to the cached books and the token.
	Library driving.LibraryService

	// Sync runs the fetch-fold-persist cycle.
	Sync driving.SyncService

	// Export writes highlights into the notes target.
	Export driving.ExportService

	// Watcher reports external edits to note pages. Optional: only the
	// Markdown notes target supports it.
	Watcher driven.NoteWatcher
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	library driving.LibraryService,
	sync driving.SyncService,
	export driving.ExportService,
) *Ports {
	return &Ports{
		Library: library,
		Sync:    sync,
		Export:  export,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	if p.Sync == nil {
		return ErrMissingSyncService
	}
	if p.Export == nil {
		return ErrMissingExportService
	}
	return nil
}
