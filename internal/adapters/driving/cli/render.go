package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sifter/internal/core/domain"
)

// highlightStyle renders matched spans on a terminal.
var highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))

// renderer turns decorated text into printable strings.
type renderer struct {
	ansi   bool
	marker domain.Marker
}

// newRenderer styles highlights for a terminal unless plain is set or
// the output is not a terminal; otherwise it uses the configured marker.
func newRenderer(w io.Writer, plain bool) renderer {
	r := renderer{marker: domain.DefaultMarker}
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			r.marker = s.Highlight
		}
	}
	r.ansi = !plain && isTerminal(w)
	return r
}

func (r renderer) text(d domain.DecoratedText) string {
	if r.ansi {
		return d.RenderWith(
			func(s string) string { return s },
			func(s string) string { return highlightStyle.Render(s) },
		)
	}
	return d.Render(r.marker)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// titleField returns the configured title field name.
func titleField() string {
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s.Search.TitleField != "" {
			return s.Search.TitleField
		}
	}
	return domain.DefaultTitleField
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// printResponse writes a search or browse response as text.
func printResponse(cmd *cobra.Command, resp *domain.SearchResponse, plain bool) {
	switch resp.Outcome {
	case domain.OutcomeInitial:
		fmt.Fprintln(cmd.OutOrStdout(), "Type a query to search.")
		return
	case domain.OutcomeNoResults:
		if resp.Query == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No records.")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for %q.\n", resp.Query)
		}
		return
	}

	if resp.Query != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%d results for %q (%d matching all words, %d matching some)\n",
			resp.Total, resp.Query, resp.Strict, resp.Loose)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%d records\n", resp.Total)
	}
	fmt.Fprintln(cmd.OutOrStdout())

	r := newRenderer(cmd.OutOrStdout(), plain)
	title := titleField()
	offset := resp.Offset()
	for i, hit := range resp.Hits {
		printHit(cmd, r, hit, title, offset+i+1)
	}

	if resp.TotalPages > 1 {
		fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d  %s\n", resp.Page, resp.TotalPages, formatLayout(resp.Layout))
	}
}

func printHit(cmd *cobra.Command, r renderer, hit domain.Hit, title string, n int) {
	heading := hit.Record.ID
	if t, ok := hit.Fields[title]; ok && t.Text != "" {
		heading = r.text(t)
	}
	if hit.Tier != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %s (%s, score %.3f)\n", n, heading, hit.Tier, hit.AverageScore)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %s\n", n, heading)
	}

	names := make([]string, 0, len(hit.Fields))
	for name := range hit.Fields {
		if name != title {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if text := hit.Fields[name]; text.Text != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "      %s: %s\n", name, r.text(text))
		}
	}
	if hit.Excerpt != nil && hit.Excerpt.Text != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", r.text(*hit.Excerpt))
	}
	fmt.Fprintln(cmd.OutOrStdout())
}

// formatLayout renders a pager as text, e.g. "‹ 1 … 4 [5] 6 … 10 ›".
func formatLayout(layout domain.PageLayout) string {
	parts := make([]string, 0, len(layout.Entries)+2)
	if layout.PrevVisible {
		parts = append(parts, "‹")
	}
	for _, e := range layout.Entries {
		switch {
		case e.Kind == domain.PageEllipsis:
			parts = append(parts, "…")
		case e.Current:
			parts = append(parts, "["+strconv.Itoa(e.Value)+"]")
		default:
			parts = append(parts, strconv.Itoa(e.Value))
		}
	}
	if layout.NextVisible {
		parts = append(parts, "›")
	}
	return strings.Join(parts, " ")
}
