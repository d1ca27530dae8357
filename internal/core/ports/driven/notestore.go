package driven

import (
	"context"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

// NoteStore is the notes target: the host that receives exported
// highlight blocks. Implementations exist for a local Markdown graph
// and for Notion pages.
type NoteStore interface {
	// Page reads the current block tree for a named page.
	// A page that does not exist yet is returned empty, not as an
	// error, so the conflict guard can treat it as writable.
	Page(ctx context.Context, name string) (*domain.Page, error)

	// ReplaceBlocks clears the page's existing sub-blocks and writes
	// the given sequence as the new content.
	ReplaceBlocks(ctx context.Context, page *domain.Page, blocks []domain.Block) error

	// AppendBlocks appends the sequence after the page's existing
	// content.
	AppendBlocks(ctx context.Context, page *domain.Page, blocks []domain.Block) error

	// Close releases resources.
	Close() error
}

// NoteWatcher is implemented by note stores that can report external
// edits. The returned channel carries page names whose content changed
// outside this process; it is closed when ctx is cancelled.
type NoteWatcher interface {
	Watch(ctx context.Context) (<-chan string, error)
}
