package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNoSettings = errors.New("settings service not configured")

var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"settings"},
	Short:   "Manage application settings",
	Long: `View and change search, pagination, highlight and refresh settings.

Settings are stored as TOML in ~/.sifter/config.toml unless --config is given.
Field weights are set per field with keys of the form weights.<field>.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Parses value according to the type of key and saves it.

Examples:
  sifter config set search.fields title,description
  sifter config set search.excerpt_field description
  sifter config set weights.title 2
  sifter config set highlight.open "**"`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}

	values, err := settingsService.Values()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	width := 0
	for _, v := range values {
		width = max(width, len(v.Key))
	}
	for _, v := range values {
		suffix := ""
		if v.Default {
			suffix = "  (default)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %q%s\n", width, v.Key, v.Value, suffix)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettings
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}
	fmt.Fprintln(cmd.OutOrStdout(), settingsService.Path())
	return nil
}
