package domain

import (
	"sort"
	"strconv"
)

// UnknownTitle is the display title for an aggregate whose highlights
// arrived without a matching book record.
const UnknownTitle = "(unknown book)"

// Key returns the canonical Library key for a book identifier.
func Key(bookID int64) string {
	return strconv.FormatInt(bookID, 10)
}

// BookEntry is the per-book aggregate: the book, its highlights in
// arrival order, and whether the highlights have been exported into
// the notes target.
type BookEntry struct {
	// Book is the source work. Nil when the highlights service returned
	// highlights for a book that was absent from the books page.
	Book *Book `json:"book"`

	// Highlights are the book's highlights in arrival order.
	Highlights []Highlight `json:"highlights"`

	// Imported marks that the highlights have been exported into the
	// notes target. Once true it survives subsequent re-folds.
	Imported bool `json:"imported"`
}

// ID returns the book identifier for the entry.
// Falls back to the first highlight's BookID when Book is nil.
func (e *BookEntry) ID() int64 {
	if e.Book != nil {
		return e.Book.ID
	}
	if len(e.Highlights) > 0 {
		return e.Highlights[0].BookID
	}
	return 0
}

// Title returns the display title for the entry.
func (e *BookEntry) Title() string {
	if e.Book != nil && e.Book.Title != "" {
		return e.Book.Title
	}
	return UnknownTitle
}

// Author returns the author name, or empty when unknown.
func (e *BookEntry) Author() string {
	if e.Book != nil {
		return e.Book.Author
	}
	return ""
}

// HighlightCount returns the number of locally held highlights.
func (e *BookEntry) HighlightCount() int {
	return len(e.Highlights)
}

// Library is the complete keyed collection of aggregates, keyed by
// book-identifier-as-string. It is the unit of caching: each successful
// sync produces a new Library that fully replaces the previous one.
type Library map[string]*BookEntry

// Fold joins one page of books and one page of highlights into a
// Library. Each highlight is appended to its book's entry in arrival
// order; the first highlight for a book creates the entry. The Imported
// flag is carried over from prev for entries that existed before, so an
// export marker survives a refresh.
//
// A highlight whose book is missing from books still produces an entry,
// with a nil Book. Books without highlights produce no entry.
func Fold(books []Book, highlights []Highlight, prev Library) Library {
	byID := make(map[int64]*Book, len(books))
	for i := range books {
		byID[books[i].ID] = &books[i]
	}

	lib := make(Library)
	for _, h := range highlights {
		key := Key(h.BookID)
		if entry, ok := lib[key]; ok {
			entry.Highlights = append(entry.Highlights, h)
			continue
		}
		entry := &BookEntry{
			Book:       byID[h.BookID],
			Highlights: []Highlight{h},
		}
		if prevEntry, ok := prev[key]; ok && prevEntry.Imported {
			entry.Imported = true
		}
		lib[key] = entry
	}
	return lib
}

// Entry returns the aggregate for a book identifier, or nil.
func (l Library) Entry(bookID int64) *BookEntry {
	return l[Key(bookID)]
}

// Sorted returns the entries ordered by descending highlight count,
// ties broken by title so the order is stable across syncs.
func (l Library) Sorted() []*BookEntry {
	entries := make([]*BookEntry, 0, len(l))
	for _, e := range l {
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].HighlightCount() != entries[j].HighlightCount() {
			return entries[i].HighlightCount() > entries[j].HighlightCount()
		}
		return entries[i].Title() < entries[j].Title()
	})
	return entries
}

// CheckIntegrity verifies that every highlight in every entry belongs
// to that entry's book. Returns ErrInvalidInput on the first violation.
func (l Library) CheckIntegrity() error {
	for key, entry := range l {
		id := entry.ID()
		if Key(id) != key {
			return ErrInvalidInput
		}
		for _, h := range entry.Highlights {
			if h.BookID != id {
				return ErrInvalidInput
			}
		}
	}
	return nil
}
