package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooks() []Book {
	return []Book{
		{ID: 1, Title: "Thinking in Systems", Author: "Donella Meadows", NumHighlights: 2},
		{ID: 2, Title: "The Dispossessed", Author: "Ursula K. Le Guin", NumHighlights: 1},
	}
}

func testHighlights() []Highlight {
	return []Highlight{
		{ID: 10, BookID: 1, Text: "A system is more than the sum of its parts."},
		{ID: 11, BookID: 2, Text: "True voyage is return."},
		{ID: 12, BookID: 1, Text: "Purposes are deduced from behavior."},
	}
}

func TestFold_GroupsHighlightsByBook(t *testing.T) {
	lib := Fold(testBooks(), testHighlights(), nil)

	require.Len(t, lib, 2)

	entry := lib.Entry(1)
	require.NotNil(t, entry)
	require.NotNil(t, entry.Book)
	assert.Equal(t, "Thinking in Systems", entry.Book.Title)
	require.Len(t, entry.Highlights, 2)
	assert.Equal(t, int64(10), entry.Highlights[0].ID)
	assert.Equal(t, int64(12), entry.Highlights[1].ID)
	assert.False(t, entry.Imported)

	assert.Len(t, lib.Entry(2).Highlights, 1)
}

func TestFold_ReferentialIntegrity(t *testing.T) {
	lib := Fold(testBooks(), testHighlights(), nil)

	require.NoError(t, lib.CheckIntegrity())
	for key, entry := range lib {
		for _, h := range entry.Highlights {
			assert.Equal(t, Key(h.BookID), key)
		}
	}
}

func TestFold_PreservesImportedFromPrevious(t *testing.T) {
	prev := Library{
		Key(1): {Book: &Book{ID: 1}, Imported: true},
	}

	lib := Fold(testBooks(), testHighlights(), prev)

	assert.True(t, lib.Entry(1).Imported, "imported flag must survive a refresh")
	assert.False(t, lib.Entry(2).Imported)
}

func TestFold_OrphanHighlightGetsNilBook(t *testing.T) {
	highlights := []Highlight{
		{ID: 20, BookID: 99, Text: "stray"},
	}

	lib := Fold(testBooks(), highlights, nil)

	entry := lib.Entry(99)
	require.NotNil(t, entry)
	assert.Nil(t, entry.Book)
	assert.Equal(t, int64(99), entry.ID())
	assert.Equal(t, UnknownTitle, entry.Title())
	require.NoError(t, lib.CheckIntegrity())
}

func TestFold_BookWithoutHighlightsProducesNoEntry(t *testing.T) {
	lib := Fold(testBooks(), []Highlight{{ID: 10, BookID: 1}}, nil)

	assert.Nil(t, lib.Entry(2))
	assert.Len(t, lib, 1)
}

func TestFold_Idempotent(t *testing.T) {
	books, highlights := testBooks(), testHighlights()

	first := Fold(books, highlights, nil)
	first.Entry(1).Imported = true
	second := Fold(books, highlights, first)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(firstJSON), string(secondJSON),
		"refolding an unchanged dataset must reproduce the cache, imported flags included")
}

func TestLibrary_SortedByHighlightCountDescending(t *testing.T) {
	lib := Library{
		Key(1): {Book: &Book{ID: 1, Title: "three"}, Highlights: make([]Highlight, 3)},
		Key(2): {Book: &Book{ID: 2, Title: "one"}, Highlights: make([]Highlight, 1)},
		Key(3): {Book: &Book{ID: 3, Title: "five"}, Highlights: make([]Highlight, 5)},
	}

	sorted := lib.Sorted()

	require.Len(t, sorted, 3)
	assert.Equal(t, []int{5, 3, 1}, []int{
		sorted[0].HighlightCount(),
		sorted[1].HighlightCount(),
		sorted[2].HighlightCount(),
	})
}

func TestLibrary_SortedBreaksTiesByTitle(t *testing.T) {
	lib := Library{
		Key(1): {Book: &Book{ID: 1, Title: "Walden"}, Highlights: make([]Highlight, 2)},
		Key(2): {Book: &Book{ID: 2, Title: "Antifragile"}, Highlights: make([]Highlight, 2)},
	}

	sorted := lib.Sorted()

	assert.Equal(t, "Antifragile", sorted[0].Title())
	assert.Equal(t, "Walden", sorted[1].Title())
}

func TestLibrary_CheckIntegrityDetectsForeignHighlight(t *testing.T) {
	lib := Library{
		Key(1): {
			Book:       &Book{ID: 1},
			Highlights: []Highlight{{ID: 10, BookID: 2}},
		},
	}

	assert.ErrorIs(t, lib.CheckIntegrity(), ErrInvalidInput)
}

func TestLibrary_RoundTripThroughJSON(t *testing.T) {
	lib := Fold(testBooks(), testHighlights(), nil)
	lib.Entry(2).Imported = true

	raw, err := json.Marshal(lib)
	require.NoError(t, err)

	var reloaded Library
	require.NoError(t, json.Unmarshal(raw, &reloaded))

	require.Len(t, reloaded, len(lib))
	for key, entry := range lib {
		got, ok := reloaded[key]
		require.True(t, ok, "missing key %s", key)
		assert.Equal(t, entry.Imported, got.Imported)
		require.Len(t, got.Highlights, len(entry.Highlights))
		for i := range entry.Highlights {
			assert.Equal(t, entry.Highlights[i].ID, got.Highlights[i].ID)
		}
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "42", Key(42))
	assert.Equal(t, "0", Key(0))
}
