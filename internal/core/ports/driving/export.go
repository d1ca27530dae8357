package driving

import "context"

// ExportService writes a book's highlights into the notes target as
// structured blocks.
type ExportService interface {
	// Export writes the aggregate for bookID to the named page: one
	// heading block with the book title, then one bullet block per
	// highlight in stored order. When pageName is empty the book
	// title is used.
	//
	// If the page already has content no highlight blocks are
	// written; a single warning block is appended instead and
	// domain.ErrPageNotEmpty is returned. The imported flag is only
	// flipped on a successful export.
	Export(ctx context.Context, bookID int64, pageName string) error
}
