package domain

// PageEntryKind distinguishes page buttons from ellipsis markers.
type PageEntryKind string

const (
	// PageNumber is a clickable page.
	PageNumber PageEntryKind = "page"

	// PageEllipsis stands for one or more hidden pages.
	PageEllipsis PageEntryKind = "ellipsis"
)

// PageEntry is one element of a pager.
type PageEntry struct {
	Kind PageEntryKind `json:"kind"`

	// Value is the page number; zero for ellipses.
	Value int `json:"value,omitempty"`

	// Current marks the active page.
	Current bool `json:"current,omitempty"`
}

// PageLayout is the ordered pager plus next/previous visibility.
type PageLayout struct {
	Entries     []PageEntry `json:"entries"`
	NextVisible bool        `json:"next_visible"`
	PrevVisible bool        `json:"prev_visible"`
}

// Pages returns the page numbers shown, in order.
func (l PageLayout) Pages() []int {
	pages := make([]int, 0, len(l.Entries))
	for _, e := range l.Entries {
		if e.Kind == PageNumber {
			pages = append(pages, e.Value)
		}
	}
	return pages
}

// Ellipses returns the number of ellipsis markers in the layout.
func (l PageLayout) Ellipses() int {
	n := 0
	for _, e := range l.Entries {
		if e.Kind == PageEllipsis {
			n++
		}
	}
	return n
}
