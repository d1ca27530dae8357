package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

var booksJSON bool

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List cached books",
	Long: `Lists the cached book aggregates sorted by highlight count,
most highlighted first. Run 'marginalia sync' first to populate the cache.`,
	RunE: runBooks,
}

func init() {
	booksCmd.Flags().BoolVar(&booksJSON, "json", false, "output books as JSON")
	rootCmd.AddCommand(booksCmd)
}

func runBooks(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	entries, err := libraryService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}

	if booksJSON {
		return outputBooksJSON(cmd, entries)
	}

	return outputBooksTable(cmd, entries)
}

func outputBooksJSON(cmd *cobra.Command, entries []*domain.BookEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal books: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputBooksTable(cmd *cobra.Command, entries []*domain.BookEntry) error {
	if len(entries) == 0 {
		cmd.Println("No books cached. Run 'marginalia sync' first.")
		return nil
	}

	cmd.Println("Books:")
	cmd.Println()
	for _, entry := range entries {
		imported := " "
		if entry.Imported {
			imported = "*"
		}

		cmd.Printf("  [%s] %s (%d highlights)\n", imported, entry.Title(), entry.HighlightCount())
		if entry.Author() != "" {
			cmd.Printf("      by %s\n", entry.Author())
		}
		cmd.Printf("      id: %d\n", entry.ID())
		cmd.Println()
	}

	cmd.Printf("Total: %d books (* = imported)\n", len(entries))
	return nil
}
