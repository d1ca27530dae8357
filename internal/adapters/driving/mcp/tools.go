package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

// bookSummary is the tool-facing shape of a cached book aggregate.
type bookSummary struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Author         string `json:"author,omitempty"`
	HighlightCount int    `json:"highlight_count"`
	Imported       bool   `json:"imported"`
}

// listBooksArgs is the input for the list_books tool.
type listBooksArgs struct{}

// getHighlightsArgs is the input for the get_highlights tool.
type getHighlightsArgs struct {
	BookID int64 `json:"book_id" jsonschema:"the numeric book identifier"`
}

// syncLibraryArgs is the input for the sync_library tool.
type syncLibraryArgs struct{}

// exportBookArgs is the input for the export_book tool.
type exportBookArgs struct {
	BookID int64  `json:"book_id" jsonschema:"the numeric book identifier"`
	Page   string `json:"page,omitempty" jsonschema:"target page name, defaults to the book title"`
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_books",
		Description: "List cached books ordered by descending highlight count",
	}, s.handleListBooks)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_highlights",
		Description: "Get the cached highlights for a book",
	}, s.handleGetHighlights)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sync_library",
		Description: "Fetch books and highlights from Readwise and refresh the cache",
	}, s.handleSyncLibrary)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_book",
		Description: "Export a book's highlights into the configured notes target",
	}, s.handleExportBook)
}

func (s *Server) handleListBooks(ctx context.Context, req *mcp.CallToolRequest, args listBooksArgs) (*mcp.CallToolResult, any, error) {
	entries, err := s.ports.Library.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing books: %w", err)
	}

	summaries := make([]bookSummary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, bookSummary{
			ID:             e.ID(),
			Title:          e.Title(),
			Author:         e.Author(),
			HighlightCount: e.HighlightCount(),
			Imported:       e.Imported,
		})
	}

	return textResult(summaries)
}

func (s *Server) handleGetHighlights(ctx context.Context, req *mcp.CallToolRequest, args getHighlightsArgs) (*mcp.CallToolResult, any, error) {
	library, err := s.ports.Library.Cached(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading cache: %w", err)
	}

	entry := library.Entry(args.BookID)
	if entry == nil {
		return nil, nil, fmt.Errorf("book %d: %w", args.BookID, domain.ErrNotFound)
	}

	return textResult(entry.Highlights)
}

func (s *Server) handleSyncLibrary(ctx context.Context, req *mcp.CallToolRequest, args syncLibraryArgs) (*mcp.CallToolResult, any, error) {
	if s.ports.Sync == nil {
		return nil, nil, errors.New("sync is not available")
	}

	library, err := s.ports.Sync.Sync(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("syncing: %w", err)
	}

	highlights := 0
	for _, e := range library {
		highlights += e.HighlightCount()
	}

	return textResult(map[string]int{
		"books":      len(library),
		"highlights": highlights,
	})
}

func (s *Server) handleExportBook(ctx context.Context, req *mcp.CallToolRequest, args exportBookArgs) (*mcp.CallToolResult, any, error) {
	if s.ports.Export == nil {
		return nil, nil, errors.New("export is not available")
	}

	err := s.ports.Export.Export(ctx, args.BookID, args.Page)
	if errors.Is(err, domain.ErrPageNotEmpty) {
		return textResult(map[string]string{
			"status": "conflict",
			"detail": "target page already has content; a warning was appended instead",
		})
	}
	if err != nil {
		return nil, nil, fmt.Errorf("exporting book %d: %w", args.BookID, err)
	}

	return textResult(map[string]string{"status": "exported"})
}

// textResult marshals v to indented JSON and wraps it in a tool result.
func textResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshalling result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}
