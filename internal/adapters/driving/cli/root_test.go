package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/ports/driving"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "sifter", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"search", "browse", "paginate", "records", "config", "mcp", "tui", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "config", "records", "no-config"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestSetup_RunsBootstrapWithOptions(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() {
		SetServices(nil)
		SetBootstrap(nil)
	})

	var got Options
	svc := &mockSearchService{response: &domain.SearchResponse{Outcome: domain.OutcomeNoResults, Query: "fox"}}
	SetBootstrap(func(o Options) (*Services, error) {
		got = o
		return &Services{Search: svc}, nil
	})

	out, err := execute(t, "search", "--records", "books.json", "--config", "c.toml", "fox")

	require.NoError(t, err)
	assert.Equal(t, Options{ConfigPath: "c.toml", RecordsPath: "books.json"}, got)
	assert.Equal(t, "fox", svc.lastQuery)
	assert.Contains(t, out, `No results for "fox".`)
}

func TestSetup_PassesNoConfig(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() { SetSettingsLoader(nil) })
	var got Options
	SetSettingsLoader(func(o Options) (driving.SettingsService, error) {
		got = o
		return newMockSettings(), nil
	})

	_, err := execute(t, "--no-config", "config", "path")

	require.NoError(t, err)
	assert.True(t, got.NoConfig)
}

func TestSetup_BootstrapError(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() { SetBootstrap(nil) })
	SetBootstrap(func(Options) (*Services, error) {
		return nil, errors.New("no such file")
	})

	_, err := execute(t, "search", "fox")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting sifter: no such file")
}

func TestSetup_SkipsBootstrapForStandaloneCommands(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() { SetBootstrap(nil) })
	called := false
	SetBootstrap(func(Options) (*Services, error) {
		called = true
		return nil, errors.New("should not run")
	})

	_, err := execute(t, "version")
	require.NoError(t, err)

	out, err := execute(t, "paginate", "1", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] 2 3 ›")

	assert.False(t, called)
}

func TestSetup_LoadsOnlySettingsForConfigCommands(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() {
		SetServices(nil)
		SetBootstrap(nil)
		SetSettingsLoader(nil)
	})
	SetBootstrap(func(Options) (*Services, error) {
		return nil, errors.New("should not run")
	})
	loads := 0
	SetSettingsLoader(func(Options) (driving.SettingsService, error) {
		loads++
		return newMockSettings(), nil
	})

	out, err := execute(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/sifter/config.toml\n", out)
	assert.Equal(t, 1, loads)
}

func TestSetup_SettingsLoaderError(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() { SetSettingsLoader(nil) })
	SetSettingsLoader(func(Options) (driving.SettingsService, error) {
		return nil, errors.New("bad toml")
	})

	_, err := execute(t, "paginate", "1", "3")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading configuration: bad toml")
}

func TestSetup_KeepsInstalledServices(t *testing.T) {
	svc := &mockSearchService{response: &domain.SearchResponse{Outcome: domain.OutcomeInitial}}
	setupTestServices(t, &Services{Search: svc})
	t.Cleanup(func() { SetBootstrap(nil) })
	SetBootstrap(func(Options) (*Services, error) {
		return nil, errors.New("should not run")
	})

	_, err := execute(t, "search", "fox")

	assert.NoError(t, err)
}

func TestShutdown_ClosesOnce(t *testing.T) {
	closes := 0
	setupTestServices(t, &Services{Close: func() error {
		closes++
		return errors.New("already closed")
	}})

	shutdown()
	shutdown()

	assert.Equal(t, 1, closes)
}

func TestSetServices_Nil(t *testing.T) {
	setupTestServices(t, &Services{Search: &mockSearchService{}, Records: &mockRecordService{}})

	SetServices(nil)

	assert.Nil(t, searchService)
	assert.Nil(t, recordService)
	assert.Nil(t, settingsService)
	assert.Nil(t, refresher)
}
