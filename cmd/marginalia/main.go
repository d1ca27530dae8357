// Command marginalia syncs Readwise highlights into a local cache and
// exports them to a Logseq-style Markdown graph or a Notion page.
package main

import (
	"fmt"
	"os"

	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driven/config/file"
	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driven/notes/markdown"
	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driven/notes/notion"
	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driven/readwise"
	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driven/storage/sqlite"
	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driving/cli"
	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driven"
	"github.com/marginalia-labs/marginalia-cli/internal/core/services"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		fatal("loading config: %v", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		fatal("opening store: %v", err)
	}
	defer store.Close()

	library := services.NewLibrary(store)
	source := readwise.NewClient(library)
	engine := services.NewEngine(source, library, cfg.GetInt(file.KeyPageSize))

	notes, err := buildNoteStore(cfg)
	if err != nil {
		fatal("opening notes target: %v", err)
	}
	defer notes.Close()

	exporter := services.NewExporter(notes, library)

	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Library: library,
		Sync:    engine,
		Export:  exporter,
		Config:  cfg,
		Notes:   notes,
		Source:  source,
	})
	cli.Execute()
}

// buildNoteStore selects the notes backend from configuration.
// An unset target defaults to the Markdown graph.
func buildNoteStore(cfg driven.ConfigStore) (driven.NoteStore, error) {
	switch target := cfg.GetString(file.KeyNotesTarget); target {
	case file.TargetNotion:
		return notion.NewStore(
			cfg.GetString(file.KeyNotionToken),
			cfg.GetString(file.KeyNotionPageID),
		)
	case file.TargetMarkdown, "":
		return markdown.NewStore(cfg.GetString(file.KeyGraphDir))
	default:
		return nil, fmt.Errorf("notes target %q: %w", target, domain.ErrUnsupportedTarget)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "marginalia: "+format+"\n", args...)
	os.Exit(1)
}
