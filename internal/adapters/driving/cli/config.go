package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marginalia-labs/marginalia-cli/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change Marginalia configuration.

Keys use dot notation, e.g.:
  readwise.page_size   items fetched per sync (default 1000)
  notes.target         "markdown" (default) or "notion"
  notes.graph_dir      root of the Markdown graph
  notion.token         Notion integration token
  notion.page_id       Notion page receiving exports`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and persist it immediately.

Values that parse as integers or booleans are stored typed; everything
else is stored as a string.

Examples:
  marginalia config set notes.target notion
  marginalia config set readwise.page_size 500`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return fmt.Errorf("config store not initialised")
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return fmt.Errorf("config store not initialised")
	}

	key, raw := args[0], args[1]
	if key == file.KeyNotesTarget && raw != file.TargetMarkdown && raw != file.TargetNotion {
		return fmt.Errorf("notes target must be %q or %q", file.TargetMarkdown, file.TargetNotion)
	}

	if err := configStore.Set(key, parseValue(raw)); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return fmt.Errorf("config store not initialised")
	}

	fmt.Fprintln(cmd.OutOrStdout(), configStore.Path())
	return nil
}

// parseValue types a raw string: integers and booleans are stored
// typed, everything else stays a string.
func parseValue(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
