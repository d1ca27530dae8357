package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driven"
	"github.com/marginalia-labs/marginalia-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.NoteStore = (*Store)(nil)

const (
	// listPageSize is the Notion API maximum for block children listing.
	listPageSize = 100
	// appendBatchSize is the Notion API maximum per append request.
	appendBatchSize = 100
	// maxDepth bounds recursive child fetches when reading a page.
	maxDepth = 3

	warningEmoji = "⚠️"
)

// Store is a NoteStore over a single Notion page. Page names are kept
// for display only; every export lands on the configured page.
type Store struct {
	client *notionapi.Client
	pageID notionapi.BlockID
}

// NewStore creates a Notion note store for the given integration token
// and target page id.
func NewStore(token, pageID string, opts ...notionapi.ClientOption) (*Store, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: notion token is required", domain.ErrInvalidInput)
	}
	if pageID == "" {
		return nil, fmt.Errorf("%w: notion page id is required", domain.ErrInvalidInput)
	}

	return &Store{
		client: notionapi.NewClient(notionapi.Token(token), opts...),
		pageID: notionapi.BlockID(pageID),
	}, nil
}

// Page reads the current block tree of the configured page.
func (s *Store) Page(ctx context.Context, name string) (*domain.Page, error) {
	blocks, err := s.children(ctx, s.pageID, 0)
	if err != nil {
		return nil, err
	}

	return &domain.Page{
		Name:   name,
		ID:     string(s.pageID),
		Blocks: blocks,
	}, nil
}

// ReplaceBlocks deletes the page's existing children and writes the
// given sequence as the new content.
func (s *Store) ReplaceBlocks(ctx context.Context, _ *domain.Page, blocks []domain.Block) error {
	ids, err := s.childIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := s.client.Block.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting block %s: %w", id, err)
		}
	}

	if err := s.appendAll(ctx, blocks); err != nil {
		return err
	}
	logger.Debug("Replaced Notion page %s with %d blocks", s.pageID, len(blocks))
	return nil
}

// AppendBlocks appends the sequence after the page's existing content.
func (s *Store) AppendBlocks(ctx context.Context, _ *domain.Page, blocks []domain.Block) error {
	return s.appendAll(ctx, blocks)
}

// Close releases resources. The store holds no open handles.
func (s *Store) Close() error {
	return nil
}

func (s *Store) appendAll(ctx context.Context, blocks []domain.Block) error {
	converted := toNotionBlocks(blocks)
	for start := 0; start < len(converted); start += appendBatchSize {
		end := min(start+appendBatchSize, len(converted))
		_, err := s.client.Block.AppendChildren(ctx, s.pageID, &notionapi.AppendBlockChildrenRequest{
			Children: converted[start:end],
		})
		if err != nil {
			return fmt.Errorf("appending blocks: %w", err)
		}
	}
	return nil
}

// children lists a block's children, following pagination and
// descending into nested blocks up to maxDepth.
func (s *Store) children(ctx context.Context, id notionapi.BlockID, depth int) ([]domain.Block, error) {
	var out []domain.Block
	var cursor notionapi.Cursor
	for {
		resp, err := s.client.Block.GetChildren(ctx, id, &notionapi.Pagination{
			StartCursor: cursor,
			PageSize:    listPageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("listing page blocks: %w", err)
		}

		for _, raw := range resp.Results {
			block := domain.Block{
				ID:    string(raw.GetID()),
				Text:  blockText(raw),
				Style: blockStyle(raw),
			}
			if depth < maxDepth && hasChildren(raw) {
				kids, err := s.children(ctx, raw.GetID(), depth+1)
				if err != nil {
					return nil, err
				}
				block.Children = kids
			}
			out = append(out, block)
		}

		if !resp.HasMore {
			return out, nil
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}
}

// childIDs lists the page's direct child block ids.
func (s *Store) childIDs(ctx context.Context) ([]notionapi.BlockID, error) {
	var ids []notionapi.BlockID
	var cursor notionapi.Cursor
	for {
		resp, err := s.client.Block.GetChildren(ctx, s.pageID, &notionapi.Pagination{
			StartCursor: cursor,
			PageSize:    listPageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("listing page blocks: %w", err)
		}
		for _, raw := range resp.Results {
			ids = append(ids, raw.GetID())
		}
		if !resp.HasMore {
			return ids, nil
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}
}
