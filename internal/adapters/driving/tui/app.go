package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driving/tui/messages"
	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driving/tui/styles"
	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driving/tui/views/books"
	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driving/tui/views/token"
	"github.com/marginalia-labs/marginalia-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// booksView is the book list view.
	booksView *books.View

	// tokenView is the access token entry view.
	tokenView *token.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// pages carries external page-edit notifications when the notes
	// target supports watching.
	pages <-chan string

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	booksView := books.NewView(s, ports.Library, ports.Sync, ports.Export)
	tokenView := token.NewView(s, ports.Library)

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		booksView:   booksView,
		tokenView:   tokenView,
		currentView: messages.ViewBooks, // Start with the book list
	}, nil
}

// WithContext sets the context for the app and, when the notes target
// supports it, subscribes to external page edits. The subscription
// lives until the context is cancelled.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	if a.ports.Watcher != nil {
		ch, err := a.ports.Watcher.Watch(ctx)
		if err != nil {
			logger.Warn("Notes watch unavailable: %v", err)
		} else {
			a.pages = ch
		}
	}
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("marginalia - Readwise Highlights"),
		a.booksView.Init(),
	}
	if a.pages != nil {
		cmds = append(cmds, a.listenForPageChanges())
	}
	return tea.Batch(cmds...)
}

// listenForPageChanges waits for the next external page edit.
func (a *App) listenForPageChanges() tea.Cmd {
	return func() tea.Msg {
		name, ok := <-a.pages
		if !ok {
			return nil
		}
		return messages.PageChanged{Name: name}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.booksView.SetDimensions(msg.Width, msg.Height)
		a.tokenView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewBooks:
			if msg.String() == "?" {
				a.currentView = messages.ViewHelp
				return a, nil
			}
			a.booksView, cmd = a.booksView.Update(msg)
			a.err = a.booksView.Err()
			return a, cmd

		case messages.ViewToken:
			a.tokenView, cmd = a.tokenView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes back to the book list
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewBooks
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewToken:
			a.tokenView.Reset()
			return a, a.tokenView.Init()
		case messages.ViewBooks:
			return a, a.booksView.Init()
		case messages.ViewHelp:
			// Help view doesn't need initialisation
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.booksView, cmd = a.booksView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit

	case messages.PageChanged:
		// Re-arm the listener so further edits keep arriving
		a.booksView, cmd = a.booksView.Update(msg)
		if a.pages != nil {
			return a, tea.Batch(cmd, a.listenForPageChanges())
		}
		return a, cmd

	case messages.TokenSaved:
		// Forward to token view so it can close itself
		a.tokenView, cmd = a.tokenView.Update(msg)
		return a, cmd
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewBooks:
		a.booksView, cmd = a.booksView.Update(msg)
		a.err = a.booksView.Err()
	case messages.ViewToken:
		a.tokenView, cmd = a.tokenView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewBooks:
		return a.booksView.View()
	case messages.ViewToken:
		return a.tokenView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.booksView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to book list
  ctrl+c      Quit

Books:
  j/k, ↑/↓    Navigate books
  s           Sync library from Readwise
  enter/e     Export selected book to notes
  t           Set access token
  r           Reload cached library
  q           Quit

Token:
  (type)      Enter token (masked)
  enter       Save token
  esc         Cancel

[esc] back to book list`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.booksView.SetDimensions(width, height)
	a.tokenView.SetDimensions(width, height)
}
