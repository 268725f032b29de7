package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/custodia-labs/sifter/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/ports/driving"
	"github.com/custodia-labs/sifter/internal/core/services"
)

func TestPaginateCmd(t *testing.T) {
	setupTestServices(t, nil)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"5", "10"}, "‹ 1 … [5] … 10 ›\n"},
		{[]string{"2", "4"}, "‹ 1 [2] 3 4 ›\n"},
		{[]string{"99", "3"}, "‹ 1 2 [3]\n"},
		{[]string{"1", "0"}, "No pages.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0]+"/"+tt.args[1], func(t *testing.T) {
			out, err := execute(t, append([]string{"paginate"}, tt.args...)...)

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestPaginateCmd_UsesSettings(t *testing.T) {
	settings := newMockSettings()
	settings.settings.Pagination = domain.PaginationSettings{Gap: 1, MinPages: 4}
	setupTestServices(t, &Services{Settings: settings})

	out, err := execute(t, "paginate", "1", "10")

	require.NoError(t, err)
	assert.Equal(t, "[1] … 10 ›\n", out)
}

func TestPaginateCmd_JSON(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "paginate", "--json", "2", "3")
	require.NoError(t, err)

	var layout domain.PageLayout
	require.NoError(t, json.Unmarshal([]byte(out), &layout))
	assert.Equal(t, []int{1, 2, 3}, layout.Pages())
	assert.True(t, layout.PrevVisible)
	assert.True(t, layout.NextVisible)
}

func TestPaginateCmd_JSONWritesOnlyToStdout(t *testing.T) {
	setupTestServices(t, nil)

	out, errOut, err := executeStreams(t, "paginate", "--json", "1", "10")
	require.NoError(t, err)

	assert.Empty(t, errOut)
	var layout domain.PageLayout
	require.NoError(t, json.Unmarshal([]byte(out), &layout))
	assert.Equal(t, []int{1, 2, 3, 10}, layout.Pages())
}

func TestPaginateCmd_ReadsConfigFile(t *testing.T) {
	setupTestServices(t, nil)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[pagination]\ngap = 1\nmin_pages = 4\n"), 0600))

	var got Options
	SetSettingsLoader(func(o Options) (driving.SettingsService, error) {
		got = o
		store, err := configfile.OpenConfigFile(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		return services.NewSettingsService(store), nil
	})
	t.Cleanup(func() { SetSettingsLoader(nil) })

	out, err := execute(t, "--config", path, "paginate", "1", "10")

	require.NoError(t, err)
	assert.Equal(t, path, got.ConfigPath)
	assert.Equal(t, "[1] … 10 ›\n", out)
}

func TestPaginateCmd_InvalidArgs(t *testing.T) {
	setupTestServices(t, nil)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"current not a number", []string{"x", "3"}, `current page "x" is not a number`},
		{"total not a number", []string{"1", "y"}, `total pages "y" is not a number`},
		{"negative total", []string{"1", "-2"}, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"paginate", "--"}, tt.args...)...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
