// Package token provides the access token entry view for the TUI.
package token

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driving/tui/messages"
	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driving/tui/styles"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driving"
)

// View is the access token entry view. Input is masked; the token is
// never echoed.
type View struct {
	styles         *styles.Styles
	libraryService driving.LibraryService

	input  textinput.Model
	width  int
	height int
	err    error
	saving bool
}

// NewView creates a new token entry view.
func NewView(s *styles.Styles, library driving.LibraryService) *View {
	ti := textinput.New()
	ti.Placeholder = "Readwise access token"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return &View{
		styles:         s,
		libraryService: library,
		input:          ti,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the input and error state.
func (v *View) Reset() {
	v.input.Reset()
	v.err = nil
	v.saving = false
	v.input.Focus()
}

// saveToken returns a command that stores the entered token.
func (v *View) saveToken(token string) tea.Cmd {
	return func() tea.Msg {
		if v.libraryService == nil {
			return messages.TokenSaved{Err: fmt.Errorf("library service not available")}
		}

		err := v.libraryService.SaveToken(context.Background(), token)
		return messages.TokenSaved{Err: err}
	}
}

// Update handles messages for the token view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			token := strings.TrimSpace(v.input.Value())
			if token == "" {
				v.err = fmt.Errorf("token must not be empty")
				return v, nil
			}
			v.saving = true
			return v, v.saveToken(token)
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewBooks}
			}
		}

	case messages.TokenSaved:
		v.saving = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.input.Reset()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewBooks}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the token entry view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Readwise Access Token"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render("Get a token from https://readwise.io/access_token"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.InputField.Render(v.input.View()))
	b.WriteString("\n\n")

	if v.saving {
		b.WriteString(v.styles.Muted.Render("Saving..."))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Value returns the current input value.
func (v *View) Value() string {
	return v.input.Value()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
