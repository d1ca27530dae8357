package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
	"github.com/marginalia-labs/marginalia-cli/internal/core/ports/driving"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the Readwise library",
	Long: `Fetches books and highlights from Readwise, folds them into
per-book aggregates and caches the result locally. Imported flags from
the previous cache are preserved.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}

	cmd.Println("Syncing Readwise library...")

	library, err := syncWithProgress(cmd.Context(), cmd, syncService)
	if errors.Is(err, domain.ErrNoToken) {
		return errors.New("no access token stored; run 'marginalia auth set' first")
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Printf("Synced %d books.\n", len(library))
	return nil
}

// syncWithProgress runs sync while displaying progress updates.
func syncWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	svc driving.SyncService,
) (domain.Library, error) {
	type result struct {
		library domain.Library
		err     error
	}

	// Start sync in goroutine
	resCh := make(chan result, 1)
	go func() {
		library, err := svc.Sync(ctx)
		resCh <- result{library, err}
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastHighlights := 0
	for {
		select {
		case res := <-resCh:
			status := svc.Status()
			if res.err == nil && status.Highlights > 0 {
				cmd.Printf("\rFetched %d books, %d highlights\n",
					status.Books, status.Highlights)
			}
			return res.library, res.err
		case <-ticker.C:
			status := svc.Status()
			if status.Highlights > lastHighlights {
				cmd.Printf("\rFetching... %d highlights", status.Highlights)
				lastHighlights = status.Highlights
			}
		}
	}
}
