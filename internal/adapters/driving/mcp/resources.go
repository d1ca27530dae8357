package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

const (
	booksURI          = "marginalia://books"
	highlightsURITmpl = "marginalia://books/{bookId}/highlights"
)

// registerResources registers all resources with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         booksURI,
		Name:        "books",
		Description: "Cached books ordered by descending highlight count",
		MIMEType:    "application/json",
	}, s.readBooks)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: highlightsURITmpl,
		Name:        "book-highlights",
		Description: "Cached highlights for a single book",
		MIMEType:    "application/json",
	}, s.readHighlights)
}

func (s *Server) readBooks(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	entries, err := s.ports.Library.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
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

	return jsonResource(req.Params.URI, summaries)
}

func (s *Server) readHighlights(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	bookID, err := extractBookID(req.Params.URI)
	if err != nil {
		return nil, err
	}

	library, err := s.ports.Library.Cached(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading cache: %w", err)
	}

	entry := library.Entry(bookID)
	if entry == nil {
		return nil, fmt.Errorf("book %d: %w", bookID, domain.ErrNotFound)
	}

	return jsonResource(req.Params.URI, entry.Highlights)
}

// extractBookID parses the book identifier out of a
// marginalia://books/{bookId}/highlights URI.
func extractBookID(uri string) (int64, error) {
	rest, ok := strings.CutPrefix(uri, booksURI+"/")
	if !ok {
		return 0, fmt.Errorf("uri %q: %w", uri, domain.ErrInvalidInput)
	}
	idPart, ok := strings.CutSuffix(rest, "/highlights")
	if !ok {
		return 0, fmt.Errorf("uri %q: %w", uri, domain.ErrInvalidInput)
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("uri %q: %w", uri, domain.ErrInvalidInput)
	}
	return id, nil
}

// jsonResource marshals v to indented JSON and wraps it in a resource result.
func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
