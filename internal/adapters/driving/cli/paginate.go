package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sifter/internal/core/pagination"
)

var paginateJSON bool

var paginateCmd = &cobra.Command{
	Use:   "paginate <current> <total>",
	Short: "Show the pager layout for a page",
	Long: `Prints the compact page-button layout for the current page out of total
pages, with ellipses standing in for hidden pages. Uses the pagination.gap
and pagination.min_pages settings when a configuration is available.`,
	Args: cobra.ExactArgs(2),
	RunE: runPaginate,
}

func init() {
	paginateCmd.Flags().BoolVar(&paginateJSON, "json", false, "output the layout as JSON")
	rootCmd.AddCommand(paginateCmd)
}

func runPaginate(cmd *cobra.Command, args []string) error {
	current, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("current page %q is not a number", args[0])
	}
	total, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("total pages %q is not a number", args[1])
	}
	if total < 0 {
		return fmt.Errorf("total pages must not be negative")
	}

	windower := pagination.New(0, 0)
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			windower = pagination.New(s.Pagination.Gap, s.Pagination.MinPages)
		}
	}
	layout := windower.Window(current, total)

	if paginateJSON {
		return printJSON(cmd, layout)
	}
	if len(layout.Entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No pages.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatLayout(layout))
	return nil
}
