// Package search provides the search-as-you-type view for the TUI.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sifter/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sifter/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/sifter/internal/adapters/driving/tui/components/pager"
	"github.com/custodia-labs/sifter/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sifter/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sifter/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sifter/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/ports/driving"
)

// Config holds display and timing options for the view.
type Config struct {
	// TitleField and SecondaryField select the fields shown per hit.
	TitleField     string
	SecondaryField string

	// PerPage overrides the service page size when positive.
	PerPage int

	// Debounce is the pause after the last keystroke before searching.
	// Zero searches on every keystroke.
	Debounce time.Duration
}

// DefaultConfig returns the configuration matching the default settings.
func DefaultConfig() Config {
	return Config{
		TitleField:     domain.DefaultTitleField,
		SecondaryField: domain.DefaultSecondaryField,
		Debounce:       domain.DefaultDebounce,
	}
}

// View represents the search view with input, results, pager and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	pager     *pager.Pager
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context
	cfg           Config

	// typeSeq counts keystrokes that changed the query; searchSeq counts
	// issued searches. Messages carrying an older sequence are dropped.
	typeSeq   int
	searchSeq int

	page     int
	response *domain.SearchResponse

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a query, false = navigating results
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService, cfg Config) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	l := list.NewResultList(s)
	l.SetFields(cfg.TitleField, cfg.SecondaryField)

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          l,
		pager:         pager.New(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		cfg:           cfg,
		page:          1,
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the cursor blink and loads the initial listing.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.runSearch())
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DebounceElapsed:
		if msg.Seq != v.typeSeq {
			return v, nil
		}
		v.page = 1
		return v, v.runSearch()

	case messages.PageRequested:
		return v, v.goToPage(msg.Page)

	case messages.RecordsRefreshed:
		return v, v.runSearch()

	case messages.SearchCompleted:
		if msg.Seq != v.searchSeq {
			return v, nil
		}
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	// Cursor blink and other component messages
	var cmd tea.Cmd
	v.input, cmd, _ = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	if keymap.Matches(key, v.keymap.Clear) {
		return v, v.clear()
	}

	if v.focusInput {
		switch {
		case keymap.Matches(key, v.keymap.Focus):
			if !v.list.IsEmpty() {
				v.setFocusInput(false)
			}
			return v, nil
		case key == "pgup":
			return v, v.goToPage(v.page - 1)
		case key == "pgdown":
			return v, v.goToPage(v.page + 1)
		}

		var changed bool
		v.input, _, changed = v.input.Update(msg)
		if !changed {
			return v, nil
		}
		v.typeSeq++
		return v, v.debounce(v.typeSeq)
	}

	switch {
	case keymap.Matches(key, v.keymap.Focus):
		v.setFocusInput(true)
		return v, nil
	case keymap.Matches(key, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	case keymap.Matches(key, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(key, v.keymap.PrevPage):
		return v, v.goToPage(v.page - 1)
	case keymap.Matches(key, v.keymap.NextPage):
		return v, v.goToPage(v.page + 1)
	case keymap.Matches(key, v.keymap.JumpPage):
		return v, v.goToPage(keymap.PageDigit(key))
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// debounce schedules the search for keystroke seq.
func (v *View) debounce(seq int) tea.Cmd {
	if v.cfg.Debounce <= 0 {
		return func() tea.Msg { return messages.DebounceElapsed{Seq: seq} }
	}
	return tea.Tick(v.cfg.Debounce, func(time.Time) tea.Msg {
		return messages.DebounceElapsed{Seq: seq}
	})
}

// goToPage searches for page when it lies within the current result set.
func (v *View) goToPage(page int) tea.Cmd {
	total := 0
	if v.response != nil {
		total = v.response.TotalPages
	}
	if page < 1 || page > total || page == v.page {
		return nil
	}
	v.page = page
	return v.runSearch()
}

// clear empties the query and returns to the initial listing.
func (v *View) clear() tea.Cmd {
	v.typeSeq++
	v.input.Reset()
	v.setFocusInput(true)
	v.page = 1
	v.err = nil
	return v.runSearch()
}

// runSearch issues a search for the current query and page. An empty
// query browses the whole collection.
func (v *View) runSearch() tea.Cmd {
	if v.searchService == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoSearchService} }
	}

	v.searchSeq++
	seq := v.searchSeq
	query := v.input.Value()
	opts := domain.SearchOptions{Page: v.page, PerPage: v.cfg.PerPage}
	svc := v.searchService
	ctx := v.ctx
	v.statusbar.SetState(status.StateSearching)

	return func() tea.Msg {
		var (
			resp *domain.SearchResponse
			err  error
		)
		if strings.TrimSpace(query) == "" {
			resp, err = svc.Browse(ctx, opts)
		} else {
			resp, err = svc.Search(ctx, query, opts)
		}
		return messages.SearchCompleted{Seq: seq, Response: resp, Err: err}
	}
}

// handleSearchCompleted shows a search response.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	resp := msg.Response
	if resp == nil {
		resp = &domain.SearchResponse{Outcome: domain.OutcomeInitial}
	}

	v.err = nil
	v.response = resp
	if resp.Page > 0 {
		v.page = resp.Page
	}
	v.list.SetHits(resp.Hits, resp.Offset())
	v.pager.SetLayout(resp.Layout)
	v.statusbar.SetMessage("")
	v.statusbar.SetCounts(status.Counts{Total: resp.Total, Strict: resp.Strict, Loose: resp.Loose})

	switch {
	case resp.Outcome == domain.OutcomeInitial:
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("Type to search")
	case resp.Outcome == domain.OutcomeNoResults:
		v.statusbar.SetState(status.StateNoResults)
	case resp.Query == "":
		v.statusbar.SetState(status.StateBrowsing)
	default:
		v.statusbar.SetState(status.StateResults)
	}

	if v.list.IsEmpty() {
		v.setFocusInput(true)
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) setFocusInput(focus bool) {
	v.focusInput = focus
	v.statusbar.SetTyping(focus)
	if focus {
		v.input.Focus()
	} else {
		v.input.Blur()
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("sifter"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.body())

	if p := v.pager.View(); p != "" {
		sections = append(sections, "", p)
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// body renders the result list or a message for empty outcomes.
func (v *View) body() string {
	if v.response == nil {
		return ""
	}
	switch v.response.Outcome {
	case domain.OutcomeInitial:
		return v.styles.Muted.Render("Start typing to search.")
	case domain.OutcomeNoResults:
		if v.response.Query == "" {
			return v.styles.Muted.Render("No records yet.")
		}
		return v.styles.Muted.Render(fmt.Sprintf("No results for %q.", v.response.Query))
	}
	return v.list.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-12) // header, input, pager and status bar
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query and schedules a search for it.
func (v *View) SetQuery(query string) tea.Cmd {
	v.input.SetValue(query)
	v.typeSeq++
	return v.debounce(v.typeSeq)
}

// Page returns the current page number.
func (v *View) Page() int {
	return v.page
}

// Response returns the last search response, or nil before the first.
func (v *View) Response() *domain.SearchResponse {
	return v.response
}

// Hits returns the hits of the current page.
func (v *View) Hits() []domain.Hit {
	return v.list.Hits()
}

// SelectedHit returns the currently selected hit.
func (v *View) SelectedHit() *domain.Hit {
	return v.list.SelectedHit()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
