package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driven"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driving"
	"github.com/marginalia-labs/marginalia-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root. Commands nil-check these
// so help and version work without full wiring.
var (
	libraryService  driving.LibraryService
	syncService     driving.SyncService
	exportService   driving.ExportService
	configStore     driven.ConfigStore
	noteStore       driven.NoteStore
	highlightSource driven.HighlightSource
)

// Services bundles the implementations the commands run against.
type Services struct {
	Library driving.LibraryService
	Sync    driving.SyncService
	Export  driving.ExportService
	Config  driven.ConfigStore
	Notes   driven.NoteStore
	Source  driven.HighlightSource
}

// SetServices wires service implementations into the commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	libraryService = s.Library
	syncService = s.Sync
	exportService = s.Export
	configStore = s.Config
	noteStore = s.Notes
	highlightSource = s.Source
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "marginalia",
	Short: "Sync Readwise highlights into your notes",
	Long: `Marginalia keeps a local copy of your Readwise library and exports
book highlights into a Logseq-style Markdown graph or a Notion page.

Start with 'marginalia auth set' to store your Readwise access token,
then 'marginalia sync' to fetch your library.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
