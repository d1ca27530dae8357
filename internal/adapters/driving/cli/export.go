package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

var exportPage string

var exportCmd = &cobra.Command{
	Use:   "export [book-id]",
	Short: "Export a book's highlights to the notes target",
	Long: `Writes one book's highlights to the configured notes target as a
heading followed by one bullet per highlight.

If the target page already has content nothing is overwritten; a
warning block is appended instead and the book keeps its unimported
state. Use --page to export to a page other than the book title.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportPage, "page", "", "target page name (defaults to the book title)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	bookID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid book id %q", args[0])
	}

	err = exportService.Export(context.Background(), bookID, exportPage)
	switch {
	case errors.Is(err, domain.ErrPageNotEmpty):
		cmd.Println("Page already has content; left a warning note instead of overwriting.")
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("no cached book with id %d; run 'marginalia sync' first", bookID)
	case err != nil:
		return fmt.Errorf("export failed: %w", err)
	}

	cmd.Println("Exported highlights and marked the book imported.")
	return nil
}
