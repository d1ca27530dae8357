// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette and styling for the TUI.
// Colours are adaptive so the UI stays readable on both light and
// dark terminal backgrounds.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.AdaptiveColor

	// Secondary is the secondary accent colour.
	Secondary lipgloss.AdaptiveColor

	// Foreground is the default text colour.
	Foreground lipgloss.AdaptiveColor

	// Muted is for less important text, such as imported books.
	Muted lipgloss.AdaptiveColor

	// Success indicates positive outcomes.
	Success lipgloss.AdaptiveColor

	// Warning indicates caution.
	Warning lipgloss.AdaptiveColor

	// Error indicates problems.
	Error lipgloss.AdaptiveColor

	// Border is the border colour.
	Border lipgloss.AdaptiveColor
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#7C3AED"}, // Purple
		Secondary:  lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#06B6D4"}, // Cyan
		Foreground: lipgloss.AdaptiveColor{Light: "#1E1E2E", Dark: "#CDD6F4"},
		Muted:      lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"},
		Success:    lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"}, // Green
		Warning:    lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"}, // Yellow
		Error:      lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"}, // Red
		Border:     lipgloss.AdaptiveColor{Light: "#BCC0CC", Dark: "#45475A"},
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
