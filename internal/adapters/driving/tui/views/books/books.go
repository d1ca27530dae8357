// Package books provides the book list view component for the TUI.
package books

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driving/tui/components/status"
	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driving/tui/messages"
	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driving/tui/styles"
	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driving"
)

// View is the book list view. Books are shown sorted by highlight
// count, most highlighted first; imported books render muted.
type View struct {
	styles         *styles.Styles
	statusBar      *status.Bar
	libraryService driving.LibraryService
	syncService    driving.SyncService
	exportService  driving.ExportService

	entries      []*domain.BookEntry
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	syncing      bool
	notice       string
	scrollOffset int
}

// NewView creates a new book list view.
func NewView(
	s *styles.Styles,
	library driving.LibraryService,
	sync driving.SyncService,
	export driving.ExportService,
) *View {
	return &View{
		styles:         s,
		statusBar:      status.NewBar(s, nil),
		libraryService: library,
		syncService:    sync,
		exportService:  export,
		entries:        []*domain.BookEntry{},
	}
}

// Init loads the cached library.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadLibrary()
}

// loadLibrary returns a command that loads the cached aggregates.
func (v *View) loadLibrary() tea.Cmd {
	return func() tea.Msg {
		if v.libraryService == nil {
			return messages.LibraryLoaded{Err: fmt.Errorf("library service not available")}
		}

		entries, err := v.libraryService.List(context.Background())
		return messages.LibraryLoaded{Entries: entries, Err: err}
	}
}

// runSync returns a command that runs the full sync cycle.
func (v *View) runSync() tea.Cmd {
	return func() tea.Msg {
		if v.syncService == nil {
			return messages.SyncCompleted{Err: fmt.Errorf("sync service not available")}
		}

		library, err := v.syncService.Sync(context.Background())
		return messages.SyncCompleted{Library: library, Err: err}
	}
}

// exportSelected returns a command that exports the selected book.
func (v *View) exportSelected() tea.Cmd {
	if v.selected >= len(v.entries) {
		return nil
	}
	bookID := v.entries[v.selected].ID()

	return func() tea.Msg {
		if v.exportService == nil {
			return messages.ExportCompleted{BookID: bookID, Err: fmt.Errorf("export service not available")}
		}

		err := v.exportService.Export(context.Background(), bookID, "")
		if errors.Is(err, domain.ErrPageNotEmpty) {
			return messages.ExportCompleted{BookID: bookID, Conflict: true}
		}
		return messages.ExportCompleted{BookID: bookID, Err: err}
	}
}

// Update handles messages for the book list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.statusBar.SetWidth(msg.Width)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.LibraryLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.statusBar.SetState(status.StateError)
			v.statusBar.SetMessage(msg.Err.Error())
		} else {
			v.entries = msg.Entries
			v.err = nil
			if v.selected >= len(v.entries) {
				v.selected = 0
				v.scrollOffset = 0
			}
			v.statusBar.SetState(status.StateReady)
			v.statusBar.SetBookCount(len(v.entries))
		}
		return v, nil

	case messages.SyncCompleted:
		v.syncing = false
		if msg.Err != nil {
			v.err = msg.Err
			v.notice = ""
			v.statusBar.SetState(status.StateError)
			v.statusBar.SetMessage(syncErrorMessage(msg.Err))
			return v, nil
		}
		v.err = nil
		v.notice = fmt.Sprintf("Synced %d books", len(msg.Library))
		v.statusBar.SetState(status.StateReady)
		v.statusBar.SetMessage(v.notice)
		return v, v.loadLibrary()

	case messages.ExportCompleted:
		switch {
		case msg.Conflict:
			v.notice = "Page already has content; warning note written instead"
			v.statusBar.SetState(status.StateReady)
			v.statusBar.SetMessage(v.notice)
		case msg.Err != nil:
			v.err = msg.Err
			v.statusBar.SetState(status.StateError)
			v.statusBar.SetMessage(msg.Err.Error())
			return v, nil
		default:
			v.notice = "Exported highlights"
			v.statusBar.SetState(status.StateReady)
			v.statusBar.SetMessage(v.notice)
		}
		// Reload so the imported marker updates
		return v, v.loadLibrary()

	case messages.PageChanged:
		v.notice = fmt.Sprintf("%q changed on disk", msg.Name)
		v.statusBar.SetMessage(v.notice)
		// Reload so imported markers reflect the external edit
		return v, v.loadLibrary()

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusBar.SetState(status.StateError)
		v.statusBar.SetMessage(msg.Err.Error())
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.entries)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "s":
		if v.syncing {
			return v, nil
		}
		v.syncing = true
		v.notice = ""
		v.statusBar.SetState(status.StateSyncing)
		v.statusBar.SetMessage("")
		return v, v.runSync()
	case "enter", "e":
		if len(v.entries) > 0 {
			return v, v.exportSelected()
		}
	case "t":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewToken}
		}
	case "r":
		v.loading = true
		return v, v.loadLibrary()
	case "q":
		return v, func() tea.Msg {
			return messages.Quit{}
		}
	}

	return v, nil
}

func syncErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoToken):
		return "no access token; press t to set one"
	case errors.Is(err, domain.ErrSyncInProgress):
		return "a sync is already running"
	case errors.Is(err, domain.ErrAuthInvalid):
		return "token rejected; press t to set a new one"
	default:
		return err.Error()
	}
}

// adjustScroll keeps the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, separator, status bar, and padding
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the book list.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Readwise Library (%d books)", len(v.entries))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading library..."))
		b.WriteString("\n")
	case v.syncing:
		b.WriteString(v.styles.Muted.Render("Syncing with Readwise..."))
		b.WriteString("\n")
		b.WriteString(v.renderEntries())
	case len(v.entries) == 0:
		b.WriteString(v.styles.Muted.Render("No books cached. Press s to sync."))
		b.WriteString("\n")
	default:
		b.WriteString(v.renderEntries())
	}

	b.WriteString("\n")
	b.WriteString(v.statusBar.View())

	return b.String()
}

// renderEntries renders the visible slice of the book list.
func (v *View) renderEntries() string {
	var b strings.Builder

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.entries) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderEntry(i, v.entries[i]))
		b.WriteString("\n")
	}

	// Scroll indicator
	if len(v.entries) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.entries)),
			len(v.entries))))
	}

	return b.String()
}

// renderEntry renders a single book line.
func (v *View) renderEntry(index int, entry *domain.BookEntry) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	marker := " "
	if entry.Imported {
		marker = "*"
	}

	title := entry.Title()
	maxTitleLen := v.width - 24
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	// Truncate on runes so multi-byte titles are never split mid-rune.
	if r := []rune(title); len(r) > maxTitleLen {
		title = string(r[:maxTitleLen-3]) + "..."
	}

	line := fmt.Sprintf("%s[%s] %s (%d)", indicator, marker, title, entry.HighlightCount())

	if index == v.selected {
		return v.styles.Selected.Render(line)
	}
	if entry.Imported {
		return v.styles.Muted.Render(line)
	}
	return v.styles.Normal.Render(line)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.statusBar.SetWidth(width)
	v.ready = true
}

// Entries returns the current book entries.
func (v *View) Entries() []*domain.BookEntry {
	return v.entries
}

// SelectedIndex returns the currently selected book index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedEntry returns the currently selected book entry.
func (v *View) SelectedEntry() *domain.BookEntry {
	if v.selected < len(v.entries) {
		return v.entries[v.selected]
	}
	return nil
}

// Syncing returns true while a sync is in flight.
func (v *View) Syncing() bool {
	return v.syncing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
