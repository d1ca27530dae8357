package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driven/storage/memory"
	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

// fakeNoteStore implements driven.NoteStore for testing.
type fakeNoteStore struct {
	pages    map[string]*domain.Page
	replaced map[string][]domain.Block
	appended map[string][]domain.Block
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{
		pages:    make(map[string]*domain.Page),
		replaced: make(map[string][]domain.Block),
		appended: make(map[string][]domain.Block),
	}
}

func (f *fakeNoteStore) Page(_ context.Context, name string) (*domain.Page, error) {
	if page, ok := f.pages[name]; ok {
		return page, nil
	}
	return &domain.Page{Name: name}, nil
}

func (f *fakeNoteStore) ReplaceBlocks(_ context.Context, page *domain.Page, blocks []domain.Block) error {
	f.replaced[page.Name] = blocks
	return nil
}

func (f *fakeNoteStore) AppendBlocks(_ context.Context, page *domain.Page, blocks []domain.Block) error {
	f.appended[page.Name] = append(f.appended[page.Name], blocks...)
	return nil
}

func (f *fakeNoteStore) Close() error { return nil }

func exporterFixture(t *testing.T) (*Exporter, *fakeNoteStore, *Library) {
	t.Helper()
	store := memory.NewKeyValueStore()
	library := NewLibrary(store)
	lib := domain.Fold(
		[]domain.Book{{ID: 1, Title: "Walden", Author: "Thoreau"}},
		[]domain.Highlight{
			{ID: 10, BookID: 1, Text: "Simplify, simplify."},
			{ID: 11, BookID: 1, Text: "Rather than love, give me truth.", Note: "closing chapter"},
		},
		nil,
	)
	require.NoError(t, library.Save(context.Background(), lib))
	notes := newFakeNoteStore()
	return NewExporter(notes, library), notes, library
}

func TestExporter_WritesHeadingThenBullets(t *testing.T) {
	exporter, notes, library := exporterFixture(t)
	ctx := context.Background()

	require.NoError(t, exporter.Export(ctx, 1, ""))

	blocks := notes.replaced["Walden"]
	require.Len(t, blocks, 3)
	assert.Equal(t, domain.StyleHeading, blocks[0].Style)
	assert.Equal(t, "Walden", blocks[0].Text)
	assert.Equal(t, domain.StyleBullet, blocks[1].Style)
	assert.Equal(t, "Simplify, simplify.", blocks[1].Text)
	assert.Equal(t, "Rather than love, give me truth.", blocks[2].Text)
	require.Len(t, blocks[2].Children, 1)
	assert.Equal(t, "closing chapter", blocks[2].Children[0].Text)
	for _, b := range blocks {
		assert.NotEmpty(t, b.ID)
	}

	lib, err := library.Cached(ctx)
	require.NoError(t, err)
	assert.True(t, lib.Entry(1).Imported)
}

func TestExporter_ExplicitPageName(t *testing.T) {
	exporter, notes, _ := exporterFixture(t)

	require.NoError(t, exporter.Export(context.Background(), 1, "Reading/Walden"))

	assert.Contains(t, notes.replaced, "Reading/Walden")
	assert.NotContains(t, notes.replaced, "Walden")
}

func TestExporter_ConflictAppendsWarningOnly(t *testing.T) {
	exporter, notes, library := exporterFixture(t)
	ctx := context.Background()
	notes.pages["Walden"] = &domain.Page{
		Name:   "Walden",
		Blocks: []domain.Block{{Text: "my existing notes"}},
	}

	err := exporter.Export(ctx, 1, "")

	assert.ErrorIs(t, err, domain.ErrPageNotEmpty)
	assert.NotContains(t, notes.replaced, "Walden", "existing content must not be overwritten")
	require.Len(t, notes.appended["Walden"], 1)
	assert.Equal(t, domain.StyleWarning, notes.appended["Walden"][0].Style)
	assert.Equal(t, ConflictWarning, notes.appended["Walden"][0].Text)

	lib, err := library.Cached(ctx)
	require.NoError(t, err)
	assert.False(t, lib.Entry(1).Imported,
		"a blocked export must not mark the book imported")
}

func TestExporter_UnknownBook(t *testing.T) {
	exporter, _, _ := exporterFixture(t)

	err := exporter.Export(context.Background(), 404, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuildBlocks_OrphanEntryUsesFallbackTitle(t *testing.T) {
	entry := &domain.BookEntry{
		Highlights: []domain.Highlight{{ID: 10, BookID: 99, Text: "stray"}},
	}

	blocks := BuildBlocks(entry)

	require.Len(t, blocks, 2)
	assert.Equal(t, domain.UnknownTitle, blocks[0].Text)
}
