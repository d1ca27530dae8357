package domain

import "time"

// Highlight represents a captured excerpt from a Book.
// The JSON tags follow the Readwise wire format.
// A Highlight is immutable once fetched.
type Highlight struct {
	// ID is the identifier assigned by the highlights service.
	ID int64 `json:"id"`

	// BookID links to the owning Book.
	BookID int64 `json:"book_id"`

	// Text is the highlighted passage.
	Text string `json:"text"`

	// Note is the user's annotation, if any.
	Note string `json:"note"`

	// Color is the highlight colour as reported by the service.
	Color string `json:"color"`

	// Location is the position within the source work.
	Location int `json:"location"`

	// LocationType describes what Location counts (page, order, offset).
	LocationType string `json:"location_type"`

	// URL is a deep link to the highlight, if the service provides one.
	URL string `json:"url"`

	// Tags are the user-assigned labels on the highlight.
	Tags []Tag `json:"tags"`

	// HighlightedAt is when the excerpt was captured.
	HighlightedAt *time.Time `json:"highlighted_at"`

	// UpdatedAt is when the highlight record last changed upstream.
	UpdatedAt *time.Time `json:"updated"`
}
