package domain

import "time"

// Tag is a user-assigned label on a book or highlight.
type Tag struct {
	// ID is the tag identifier assigned by the highlights service.
	ID int64 `json:"id"`

	// Name is the tag text.
	Name string `json:"name"`
}

// Book represents a source work fetched from the highlights service.
// The JSON tags follow the Readwise wire format so a book survives the
// fetch -> cache -> reload round trip byte-for-byte.
// A Book is immutable within one sync cycle.
type Book struct {
	// ID is the identifier assigned by the highlights service.
	ID int64 `json:"id"`

	// Title is the human-readable title.
	Title string `json:"title"`

	// Author is the author name as reported by the service.
	Author string `json:"author"`

	// Category is the kind of work (books, articles, tweets, podcasts).
	Category string `json:"category"`

	// Source identifies where the highlights came from (kindle, api, ...).
	Source string `json:"source"`

	// NumHighlights is the highlight count reported by the service.
	// The locally folded highlight sequence may be shorter when the
	// account exceeds one page of highlights.
	NumHighlights int `json:"num_highlights"`

	// CoverImageURL is the cover image location.
	CoverImageURL string `json:"cover_image_url"`

	// SourceURL is the original article/tweet location, if any.
	SourceURL string `json:"source_url"`

	// Tags are the user-assigned labels on the book.
	Tags []Tag `json:"tags"`

	// LastHighlightAt is when the most recent highlight was captured.
	LastHighlightAt *time.Time `json:"last_highlight_at"`

	// UpdatedAt is when the book record last changed upstream.
	UpdatedAt *time.Time `json:"updated"`
}
