package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sifter/internal/adapters/driving/tui"
)

// runApp runs the TUI program. Replaced in tests.
var runApp = (*tui.App).Run

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search UI",
	Long: `Launch the interactive search-as-you-type interface.

Results update after a short pause in typing and are re-run whenever the
records are refreshed.

Controls:
  type       Edit the query
  tab        Move between query and results
  ↑/k, ↓/j   Select a result
  ←/h, →/l   Previous / next page (pgup/pgdown while typing)
  1-9        Jump to a page
  esc        Clear the query
  ?          Toggle help
  q, ctrl+c  Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Recover to get a stack trace after the alt screen is released
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if searchService == nil {
		return errNoSearch
	}

	app, err := tui.NewApp(&tui.Ports{
		Search:    searchService,
		Settings:  settingsService,
		Refresher: refresher,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	// The refresher keeps the index current while the UI is open
	stop := startRefresher(cmd.Context())
	defer stop()

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
