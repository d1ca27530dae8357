package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marginalia-labs/marginalia-cli/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Readwise access token",
	Long: `Store, inspect, or remove the Readwise access token.

Get a token from https://readwise.io/access_token and store it with
'marginalia auth set'. The token is kept in the local cache; it is
never written to the config file.

Examples:
  # Store a token (prompted, not echoed)
  marginalia auth set

  # Store a token non-interactively
  marginalia auth set --token "XXXX"

  # Show the stored token, masked
  marginalia auth show

  # Remove the stored token
  marginalia auth clear`,
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store a Readwise access token",
	RunE:  runAuthSet,
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored token, masked",
	RunE:  runAuthShow,
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored token",
	RunE:  runAuthClear,
}

// authToken is a flag for auth set.
var authToken string

func init() {
	authSetCmd.Flags().StringVar(
		&authToken, "token", "", "Access token (for non-interactive mode)")

	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authShowCmd)
	authCmd.AddCommand(authClearCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSet(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	token := authToken
	if token == "" {
		cmd.Print("Enter Readwise access token: ")
		token = readPassword()
		cmd.Println()
	}
	if token == "" {
		return errors.New("no token provided")
	}

	ctx := context.Background()
	if err := libraryService.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	// The source reads the token lazily, so validation sees the token
	// that was just stored.
	if highlightSource != nil {
		if err := highlightSource.Validate(ctx); err != nil {
			if errors.Is(err, domain.ErrAuthInvalid) {
				_ = libraryService.ClearToken(ctx)
				return fmt.Errorf("token rejected by Readwise: %w", err)
			}
			cmd.Printf("Warning: could not validate token: %v\n", err)
		}
	}

	cmd.Println("Token saved. Run 'marginalia sync' to fetch your library.")
	return nil
}

func runAuthShow(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	token, err := libraryService.Token(context.Background())
	if errors.Is(err, domain.ErrNoToken) {
		cmd.Println("No token stored. Run 'marginalia auth set' to add one.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	cmd.Printf("Token: %s\n", maskToken(token))
	return nil
}

func runAuthClear(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.ClearToken(context.Background()); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	cmd.Println("Token removed.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
