// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

// LibraryLoaded carries the cached book aggregates, sorted by
// descending highlight count.
type LibraryLoaded struct {
	Entries []*domain.BookEntry
	Err     error
}

// SyncCompleted signals the sync cycle finished.
type SyncCompleted struct {
	Library domain.Library
	Err     error
}

// SyncTick drives status polling while a sync is in flight.
type SyncTick struct{}

// ExportCompleted signals an export attempt finished.
// Conflict is true when the target page already had content and only a
// warning block was written.
type ExportCompleted struct {
	BookID   int64
	Conflict bool
	Err      error
}

// PageChanged signals that a note page was edited outside this
// process.
type PageChanged struct {
	Name string
}

// TokenSaved signals the access token was stored.
type TokenSaved struct {
	Err error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewBooks is the book list view.
	ViewBooks ViewType = iota
	// ViewToken is the access token entry view.
	ViewToken
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewBooks:
		return "books"
	case ViewToken:
		return "token"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
