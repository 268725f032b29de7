package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sifter/internal/core/domain"
)

var (
	searchPage    int
	searchPerPage int
	searchJSON    bool
	searchPlain   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the record collection",
	Long: `Runs a typo-tolerant search over all records.

Records matching every significant query word are listed first, followed by
records matching some of them. Within each group records matching in the
title come first, then records matching more words, then the closest matches.
Stop words such as "the" and "and" are ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Page through every record",
	Long:  `Lists all records in collection order, one page at a time.`,
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, browseCmd} {
		c.Flags().IntVarP(&searchPage, "page", "p", 1, "page to show")
		c.Flags().IntVarP(&searchPerPage, "per-page", "n", 0, "results per page (default from config)")
		c.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
		c.Flags().BoolVar(&searchPlain, "plain", false, "mark highlights with the configured marker instead of color")
		rootCmd.AddCommand(c)
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errNoSearch
	}

	query := strings.Join(args, " ")
	opts := domain.SearchOptions{Page: searchPage, PerPage: searchPerPage}
	resp, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return err
	}

	if searchJSON {
		return printJSON(cmd, resp)
	}
	printResponse(cmd, resp, searchPlain)
	return nil
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errNoSearch
	}

	opts := domain.SearchOptions{Page: searchPage, PerPage: searchPerPage}
	resp, err := searchService.Browse(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if searchJSON {
		return printJSON(cmd, resp)
	}
	printResponse(cmd, resp, searchPlain)
	return nil
}
