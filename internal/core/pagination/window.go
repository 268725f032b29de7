// Package pagination computes page counts, page slices and the compact
// page-button window shown under a result list.
package pagination

import "github.com/custodia-labs/sifter/internal/core/domain"

// Windower builds page layouts.
type Windower struct {
	// Gap is the number of pages always shown at the end the current page is near.
	Gap int

	// MinPages is the page count above which ellipses are shown.
	MinPages int
}

// New returns a Windower, using defaults for non-positive values.
func New(gap, minPages int) Windower {
	if gap <= 0 {
		gap = domain.DefaultPageGap
	}
	if minPages <= 0 {
		minPages = domain.DefaultMinPages
	}
	return Windower{Gap: gap, MinPages: minPages}
}

// Window returns the layout with the default gap and minimum page count.
func Window(current, total int) domain.PageLayout {
	return New(domain.DefaultPageGap, domain.DefaultMinPages).Window(current, total)
}

// Window returns the pager for the current page out of total pages.
//
// Page 1, the last page and the current page are always shown. Near the
// start the first Gap pages are shown, near the end the last Gap pages.
// When total exceeds MinPages, an ellipsis stands in for hidden pages
// after page 1 and before the last page.
func (w Windower) Window(current, total int) domain.PageLayout {
	if total <= 0 {
		return domain.PageLayout{Entries: []domain.PageEntry{}}
	}
	current = Clamp(current, total)

	tailFrom := total - w.Gap + 1
	show := func(p int) bool {
		switch {
		case p == 1, p == total, p == current:
			return true
		case current <= w.Gap && p <= w.Gap:
			return true
		case current >= tailFrom && p >= tailFrom:
			return true
		}
		return false
	}
	headDots := current > w.Gap && total > w.MinPages
	tailDots := current < tailFrom && total > w.MinPages

	entries := make([]domain.PageEntry, 0, 2*w.Gap+3)
	prev := 0
	for p := 1; p <= total; p++ {
		if !show(p) {
			continue
		}
		if prev > 0 && p-prev > 1 {
			if (prev == 1 && headDots) || (p == total && tailDots) {
				entries = append(entries, domain.PageEntry{Kind: domain.PageEllipsis})
			}
		}
		entries = append(entries, domain.PageEntry{
			Kind:    domain.PageNumber,
			Value:   p,
			Current: p == current,
		})
		prev = p
	}

	return domain.PageLayout{
		Entries:     entries,
		NextVisible: current < total,
		PrevVisible: current > 1,
	}
}

// TotalPages returns the number of pages needed for n items.
func TotalPages(n, perPage int) int {
	if n <= 0 || perPage <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// Clamp limits page to [1, total]. With no pages it returns 1.
func Clamp(page, total int) int {
	if total < 1 || page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Slice returns the half-open item range [start, end) of page.
func Slice(n, page, perPage int) (start, end int) {
	if n <= 0 || perPage <= 0 {
		return 0, 0
	}
	page = Clamp(page, TotalPages(n, perPage))
	start = (page - 1) * perPage
	end = min(n, start+perPage)
	return start, end
}
