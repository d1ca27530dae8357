package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driving/tui"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driven"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Marginalia.

The TUI lists your cached books sorted by highlight count and lets you
sync, export, and manage your token with keyboard navigation.

Controls:
  ↑/k, ↓/j - Navigate books
  s        - Sync library
  Enter/e  - Export selected book
  t        - Set access token
  Esc      - Back / Cancel
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Library: libraryService,
		Sync:    syncService,
		Export:  exportService,
	}
	// The Markdown notes target can report external page edits
	if w, ok := noteStore.(driven.NoteWatcher); ok {
		ports.Watcher = w
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
