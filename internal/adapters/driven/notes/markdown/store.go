package markdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driven"
	"github.com/marginalia-labs/marginalia-cli/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.NoteStore   = (*Store)(nil)
	_ driven.NoteWatcher = (*Store)(nil)
)

// namespaceSep replaces "/" in page names on disk, matching the
// Logseq convention for namespaced pages.
const namespaceSep = "___"

// Store is a NoteStore over a Logseq-style Markdown graph.
type Store struct {
	pagesDir string
}

// NewStore creates a Markdown note store rooted at the graph
// directory. The pages subdirectory is created if missing.
func NewStore(graphDir string) (*Store, error) {
	if graphDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		graphDir = filepath.Join(home, "notes")
	}

	pagesDir := filepath.Join(graphDir, "pages")
	if err := os.MkdirAll(pagesDir, 0755); err != nil {
		return nil, fmt.Errorf("creating pages directory: %w", err)
	}

	return &Store{pagesDir: pagesDir}, nil
}

// pagePath maps a page name to its file path.
func (s *Store) pagePath(name string) string {
	file := strings.ReplaceAll(name, "/", namespaceSep) + ".md"
	return filepath.Join(s.pagesDir, file)
}

// pageName maps a file name back to its page name.
func pageName(file string) string {
	name := strings.TrimSuffix(filepath.Base(file), ".md")
	return strings.ReplaceAll(name, namespaceSep, "/")
}

// Page reads the current block tree for a named page.
// A page file that does not exist yet is returned empty.
func (s *Store) Page(_ context.Context, name string) (*domain.Page, error) {
	path := s.pagePath(name)
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &domain.Page{Name: name, ID: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading page file: %w", err)
	}

	return &domain.Page{
		Name:   name,
		ID:     path,
		Blocks: parseBlocks(string(content)),
	}, nil
}

// ReplaceBlocks overwrites the page file with the given sequence.
func (s *Store) ReplaceBlocks(_ context.Context, page *domain.Page, blocks []domain.Block) error {
	path := s.pagePath(page.Name)
	if err := os.WriteFile(path, []byte(renderBlocks(blocks)), 0644); err != nil {
		return fmt.Errorf("writing page file: %w", err)
	}
	logger.Debug("Wrote %d blocks to %s", len(blocks), path)
	return nil
}

// AppendBlocks appends the sequence after the page's existing content.
func (s *Store) AppendBlocks(_ context.Context, page *domain.Page, blocks []domain.Block) error {
	path := s.pagePath(page.Name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening page file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(renderBlocks(blocks)); err != nil {
		return fmt.Errorf("appending to page file: %w", err)
	}
	return nil
}

// Close releases resources. The store holds no open handles.
func (s *Store) Close() error {
	return nil
}

// Watch reports page names whose files change outside this process.
// The channel is closed when ctx is cancelled.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(s.pagesDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching pages directory: %w", err)
	}

	changes := make(chan string)
	go func() {
		defer close(changes)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if filepath.Ext(event.Name) != ".md" {
					continue
				}
				select {
				case changes <- pageName(event.Name):
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Graph watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}
