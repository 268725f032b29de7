package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sifter/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sifter/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sifter/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sifter/internal/adapters/driving/tui/views/search"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	// searchView is the search-as-you-type view.
	searchView *search.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// stale is set by the refresher when the index was rebuilt and
	// cleared when the search view re-runs its query.
	stale        atomic.Bool
	refreshEvery time.Duration

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	settings := ports.settings()

	a := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		help:         help.New(),
		searchView:   search.NewView(s, km, ports.Search, viewConfig(settings)),
		currentView:  messages.ViewSearch,
		refreshEvery: refreshEvery(settings),
	}
	if ports.Refresher != nil {
		ports.Refresher.OnRefresh(a.MarkStale)
	}
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("sifter"),
		a.searchView.Init(),
		a.pollRefresh(),
	)
}

// pollRefresh schedules the next rebuild check.
func (a *App) pollRefresh() tea.Cmd {
	if a.ports.Refresher == nil {
		return nil
	}
	return tea.Tick(a.refreshEvery, func(time.Time) tea.Msg {
		return messages.RefreshTick{}
	})
}

// MarkStale records that the index was rebuilt. It is safe to call from
// any goroutine.
func (a *App) MarkStale() {
	a.stale.Store(true)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			// Any of esc, ? or q closes help
			switch msg.String() {
			case "esc", "?", "q":
				a.currentView = messages.ViewSearch
			}
			return a, nil
		}
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.RefreshTick:
		cmds := []tea.Cmd{a.pollRefresh()}
		if a.stale.Swap(false) {
			a.searchView, cmd = a.searchView.Update(messages.RecordsRefreshed{})
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.SearchCompleted:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit
	}

	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	if a.currentView == messages.ViewHelp {
		return a.viewHelp()
	}
	return a.searchView.View()
}

// viewHelp renders the keybinding reference.
func (a *App) viewHelp() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("Keys"),
		"",
		a.help.FullHelpView(a.keymap.FullHelp()),
		"",
		a.styles.Muted.Render("Typing edits the query; tab moves to the results."),
		"",
		a.styles.Help.Render("[esc] back"),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SearchView returns the search view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.searchView.SetDimensions(width, height)
}
