package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/pagination"
)

type mockSearchService struct {
	response *domain.SearchResponse
	err      error

	lastQuery string
	lastOpts  domain.SearchOptions
	browsed   bool
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.response, m.err
}

func (m *mockSearchService) Browse(_ context.Context, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	m.browsed = true
	m.lastOpts = opts
	return m.response, m.err
}

func (m *mockSearchService) Layout(current, total int) domain.PageLayout {
	return pagination.Window(current, total)
}

type mockRecordService struct {
	records   []domain.Record
	err       error
	loaded    bool
	reloads   int
	imported  []domain.Record
	completed bool
}

func (m *mockRecordService) List(context.Context) ([]domain.Record, error) {
	return m.records, m.err
}

func (m *mockRecordService) Get(_ context.Context, id string) (*domain.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.records {
		if m.records[i].ID == id {
			return &m.records[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRecordService) Reload(context.Context) error {
	m.reloads++
	return m.err
}

func (m *mockRecordService) Loaded() bool {
	return m.loaded
}

func (m *mockRecordService) Import(_ context.Context, records []domain.Record, complete bool) error {
	if m.err != nil {
		return m.err
	}
	m.imported = records
	m.completed = complete
	return nil
}

type mockSettingsService struct {
	settings domain.Settings
	values   []domain.SettingValue
	setErr   error
	set      map[string]string
}

func newMockSettings() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultSettings(), set: map[string]string{}}
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Values() ([]domain.SettingValue, error) {
	return m.values, nil
}

func (m *mockSettingsService) Path() string {
	return "/tmp/sifter/config.toml"
}

type mockRefresher struct {
	mu      sync.Mutex
	started bool
	stops   int
}

func (m *mockRefresher) Start(ctx context.Context) error {
	m.mu.Lock()
	m.started = true
	m.mu.Unlock()
	<-ctx.Done()
	return nil
}

func (m *mockRefresher) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops++
}

func (m *mockRefresher) OnRefresh(func()) {}

// setupTestServices installs services for one test.
func setupTestServices(t *testing.T, s *Services) {
	t.Helper()
	SetServices(s)
	t.Cleanup(func() { SetServices(nil) })
}

// execute runs the root command and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeStreams(t, args...)
	return out, err
}

// executeStreams runs the root command with args and returns stdout and
// stderr separately. Flag variables are reset first since cobra keeps them
// between runs.
func executeStreams(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	searchPage, searchPerPage = 1, 0
	searchJSON, searchPlain = false, false
	paginateJSON, recordsJSON, importIncomplete = false, false, false
	opts = Options{}
	verbose = false

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
