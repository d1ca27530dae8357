package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driven"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driving"
	"github.com/marginalia-labs/marginalia-cli/internal/logger"
)

// ConflictWarning is the text of the block appended when the target
// page already has content.
const ConflictWarning = "marginalia: this page already has content, highlights were not inserted"

// Ensure Exporter implements the interface.
var _ driving.ExportService = (*Exporter)(nil)

// Exporter writes a book's highlights into the notes target.
type Exporter struct {
	notes   driven.NoteStore
	library *Library
}

// NewExporter creates an exporter over the given notes target.
func NewExporter(notes driven.NoteStore, library *Library) *Exporter {
	return &Exporter{notes: notes, library: library}
}

// Export writes the aggregate for bookID to the named page.
//
// A page that already has content is never overwritten: a single
// warning block is appended, domain.ErrPageNotEmpty is returned and
// the imported flag stays untouched.
func (x *Exporter) Export(ctx context.Context, bookID int64, pageName string) error {
	lib, err := x.library.Cached(ctx)
	if err != nil {
		return err
	}
	entry := lib.Entry(bookID)
	if entry == nil {
		return fmt.Errorf("book %d: %w", bookID, domain.ErrNotFound)
	}

	if pageName == "" {
		pageName = entry.Title()
	}

	page, err := x.notes.Page(ctx, pageName)
	if err != nil {
		return fmt.Errorf("read page %q: %w", pageName, err)
	}

	if page.HasContent() {
		logger.Warn("Page %q already has content, leaving it untouched", pageName)
		warning := []domain.Block{{
			ID:    uuid.NewString(),
			Text:  ConflictWarning,
			Style: domain.StyleWarning,
		}}
		if err := x.notes.AppendBlocks(ctx, page, warning); err != nil {
			return fmt.Errorf("append warning: %w", err)
		}
		return fmt.Errorf("page %q: %w", pageName, domain.ErrPageNotEmpty)
	}

	if err := x.notes.ReplaceBlocks(ctx, page, BuildBlocks(entry)); err != nil {
		return fmt.Errorf("write page %q: %w", pageName, err)
	}

	if err := x.library.MarkImported(ctx, bookID); err != nil {
		return err
	}

	logger.Info("Exported %d highlights to %q", entry.HighlightCount(), pageName)
	return nil
}

// BuildBlocks renders an aggregate as a block sequence: one heading
// block with the book title, then one bullet block per highlight in
// stored order. A highlight's note becomes a nested child bullet.
func BuildBlocks(entry *domain.BookEntry) []domain.Block {
	blocks := make([]domain.Block, 0, len(entry.Highlights)+1)
	blocks = append(blocks, domain.Block{
		ID:    uuid.NewString(),
		Text:  entry.Title(),
		Style: domain.StyleHeading,
	})

	for _, h := range entry.Highlights {
		block := domain.Block{
			ID:    uuid.NewString(),
			Text:  h.Text,
			Style: domain.StyleBullet,
		}
		if h.Note != "" {
			block.Children = []domain.Block{{
				ID:    uuid.NewString(),
				Text:  h.Note,
				Style: domain.StyleBullet,
			}}
		}
		blocks = append(blocks, block)
	}
	return blocks
}
