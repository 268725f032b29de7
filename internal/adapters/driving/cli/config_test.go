package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sifter/internal/core/domain"
)

func TestConfigShow(t *testing.T) {
	settings := newMockSettings()
	settings.values = []domain.SettingValue{
		{Key: "pagination.gap", Value: "3", Default: true},
		{Key: "search.title_field", Value: "name"},
	}
	setupTestServices(t, &Services{Settings: settings})

	for _, args := range [][]string{{"config"}, {"config", "show"}, {"settings", "show"}} {
		out, err := execute(t, args...)

		require.NoError(t, err)
		assert.Equal(t,
			"pagination.gap      \"3\"  (default)\n"+
				"search.title_field  \"name\"\n",
			out, args)
	}
}

func TestConfigSet(t *testing.T) {
	settings := newMockSettings()
	setupTestServices(t, &Services{Settings: settings})

	out, err := execute(t, "config", "set", "search.threshold", "0.3")

	require.NoError(t, err)
	assert.Equal(t, "Set search.threshold = 0.3\n", out)
	assert.Equal(t, "0.3", settings.set["search.threshold"])
}

func TestConfigSet_Error(t *testing.T) {
	settings := newMockSettings()
	settings.setErr = domain.ErrUnknownSetting
	setupTestServices(t, &Services{Settings: settings})

	_, err := execute(t, "config", "set", "search.treshold", "0.3")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownSetting))
	assert.Contains(t, err.Error(), "failed to save setting")
}

func TestConfigPath(t *testing.T) {
	setupTestServices(t, &Services{Settings: newMockSettings()})

	out, err := execute(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/sifter/config.toml\n", out)
}

func TestConfig_NoService(t *testing.T) {
	setupTestServices(t, nil)

	for _, args := range [][]string{{"config", "show"}, {"config", "set", "a", "b"}, {"config", "path"}} {
		_, err := execute(t, args...)
		assert.ErrorIs(t, err, errNoSettings, args)
	}
}
