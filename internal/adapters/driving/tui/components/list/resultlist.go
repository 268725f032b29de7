// Package list provides the result list component for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sifter/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sifter/internal/core/domain"
)

// linesPerHit is the height of one rendered hit including its gap.
const linesPerHit = 3

// ResultList displays one page of decorated hits in a navigable list.
type ResultList struct {
	hits      []domain.Hit
	offset    int
	selected  int
	styles    *styles.Styles
	title     string
	secondary string
	width     int
	height    int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles:    s,
		title:     domain.DefaultTitleField,
		secondary: domain.DefaultSecondaryField,
		width:     80,
		height:    10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of hits.
func (r *ResultList) View() string {
	if len(r.hits) == 0 {
		return ""
	}

	visible := max((r.height)/linesPerHit, 1)
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.hits))

	blocks := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		blocks = append(blocks, r.renderHit(i, &r.hits[i]))
	}
	return strings.Join(blocks, "\n\n")
}

// renderHit formats a hit as a heading line and a detail line.
func (r *ResultList) renderHit(index int, hit *domain.Hit) string {
	indicator := "  "
	plain := r.styles.Normal
	if index == r.selected {
		indicator = "› "
		plain = r.styles.Title
	}

	number := r.styles.Muted.Render(fmt.Sprintf("%d. ", r.offset+index+1))
	room := max(r.width-24, 10)

	heading := domain.DecoratedText{Text: hit.Record.ID}
	if t, ok := hit.Fields[r.title]; ok && t.Text != "" {
		heading = t
	}
	line := indicator + number + r.render(Truncate(heading, room), plain)
	if hit.Tier != "" {
		line += r.styles.Muted.Render(fmt.Sprintf("  %s %.2f", hit.Tier, hit.AverageScore))
	}

	detail, ok := r.detail(hit)
	if !ok {
		return line
	}
	return line + "\n      " + r.render(Truncate(detail, max(r.width-8, 20)), r.styles.Muted)
}

// detail prefers the excerpt and falls back to the secondary field.
func (r *ResultList) detail(hit *domain.Hit) (domain.DecoratedText, bool) {
	if hit.Excerpt != nil && hit.Excerpt.Text != "" {
		return *hit.Excerpt, true
	}
	if d, ok := hit.Fields[r.secondary]; ok && d.Text != "" {
		return d, true
	}
	return domain.DecoratedText{}, false
}

func (r *ResultList) render(d domain.DecoratedText, plain lipgloss.Style) string {
	return d.RenderWith(
		func(s string) string { return plain.Render(s) },
		func(s string) string { return r.styles.Highlight.Render(s) },
	)
}

// Truncate shortens d to at most n runes, ending with an ellipsis when cut.
// Spans past the cut are dropped and a span crossing it is clipped.
func Truncate(d domain.DecoratedText, n int) domain.DecoratedText {
	runes := []rune(d.Text)
	if len(runes) <= n || n < 2 {
		return d
	}

	keep := n - 1
	out := domain.DecoratedText{Text: string(runes[:keep]) + "…"}
	for _, sp := range d.Spans {
		if sp.Start >= keep {
			break
		}
		if sp.End() > keep {
			sp.Length = keep - sp.Start
		}
		out.Spans = append(out.Spans, sp)
	}
	return out
}

// SetHits replaces the list contents. offset is the number of results
// before the first hit, used for numbering.
func (r *ResultList) SetHits(hits []domain.Hit, offset int) {
	r.hits = hits
	r.offset = offset
	r.selected = 0
}

// Hits returns the current hits.
func (r *ResultList) Hits() []domain.Hit {
	return r.hits
}

// SetFields sets the title and secondary field names.
func (r *ResultList) SetFields(title, secondary string) {
	if title != "" {
		r.title = title
	}
	if secondary != "" {
		r.secondary = secondary
	}
}

// Selected returns the index of the selected hit.
func (r *ResultList) Selected() int {
	return r.selected
}

// SelectedHit returns the currently selected hit, or nil if none.
func (r *ResultList) SelectedHit() *domain.Hit {
	if r.selected < 0 || r.selected >= len(r.hits) {
		return nil
	}
	return &r.hits[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.hits)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of hits.
func (r *ResultList) Count() int {
	return len(r.hits)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.hits) == 0
}
