package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-labs/sanara/internal/adapters/driven/config/file"
)

// setupTestConfig points the package-level config store at a
// temporary directory.
func setupTestConfig(t *testing.T) {
	t.Helper()

	orig := configStore
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	configStore = store

	t.Cleanup(func() {
		configStore = orig
		rootCmd.SetArgs(nil)
	})
}

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
}

func TestSettingsShow_PrintsAllKeys(t *testing.T) {
	setupTestConfig(t)
	require.NoError(t, configStore.Set(file.KeySearchMaxResults, int64(20)))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "search.max_results = 20")
	assert.Contains(t, buf.String(), "embedding.provider = (unset)")
}

func TestSettingsShow_MasksAPIKeys(t *testing.T) {
	setupTestConfig(t)
	require.NoError(t, configStore.Set(file.KeyEmbeddingAPIKey, "sk-secret"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "sk-secret")
	assert.Contains(t, buf.String(), "embedding.api_key = (set)")
}

func TestSettingsSet_PersistsTypedValues(t *testing.T) {
	setupTestConfig(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "set", "vector.enabled", "true"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, configStore.GetBool(file.KeyVectorEnabled))
}

func TestSettingsSet_RejectsUnknownKey(t *testing.T) {
	setupTestConfig(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "set", "bogus.key", "1"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown settings key")
}

func TestSettingsPath_PrintsConfigPath(t *testing.T) {
	setupTestConfig(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "path"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "config.toml")
}

func TestParseSettingsValue(t *testing.T) {
	assert.Equal(t, true, parseSettingsValue("true"))
	assert.Equal(t, int64(42), parseSettingsValue("42"))
	assert.Equal(t, 0.35, parseSettingsValue("0.35"))
	assert.Equal(t, "ollama", parseSettingsValue("ollama"))
}
