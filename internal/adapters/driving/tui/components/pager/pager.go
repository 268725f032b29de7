// Package pager renders the page navigation row for the TUI.
package pager

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sifter/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sifter/internal/core/domain"
)

// Pager displays a page layout.
type Pager struct {
	styles *styles.Styles
	layout domain.PageLayout
}

// New creates a pager with no pages.
func New(s *styles.Styles) *Pager {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Pager{styles: s}
}

// SetLayout replaces the displayed layout.
func (p *Pager) SetLayout(layout domain.PageLayout) {
	p.layout = layout
}

// Layout returns the displayed layout.
func (p *Pager) Layout() domain.PageLayout {
	return p.layout
}

// Current returns the active page, or zero when there is none.
func (p *Pager) Current() int {
	for _, e := range p.layout.Entries {
		if e.Current {
			return e.Value
		}
	}
	return 0
}

// View renders the pager. A layout with a single page renders nothing.
func (p *Pager) View() string {
	if len(p.layout.Entries) < 2 {
		return ""
	}

	parts := make([]string, 0, len(p.layout.Entries)+2)
	if p.layout.PrevVisible {
		parts = append(parts, p.styles.Page.Render("‹"))
	}
	for _, e := range p.layout.Entries {
		switch {
		case e.Kind == domain.PageEllipsis:
			parts = append(parts, p.styles.Muted.Render("…"))
		case e.Current:
			parts = append(parts, p.styles.PageCurrent.Render(strconv.Itoa(e.Value)))
		default:
			parts = append(parts, p.styles.Page.Render(strconv.Itoa(e.Value)))
		}
	}
	if p.layout.NextVisible {
		parts = append(parts, p.styles.Page.Render("›"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
