package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindwell-labs/sanara/internal/adapters/driven/config/file"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage configuration",
	Long:  `View and change the configuration stored in ~/.sanara/config.toml.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets a configuration key. Keys use dot notation, e.g.:

  sanara settings set search.max_results 20
  sanara settings set embedding.provider openai
  sanara settings set vector.enabled true`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runSettingsPath,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingsKeys lists every recognized key so show prints a stable,
// complete view even for unset keys.
var settingsKeys = []string{
	file.KeySearchMaxResults,
	file.KeySearchStrategy,
	file.KeySearchBiasThreshold,
	file.KeySearchDiversityFactor,
	file.KeySearchTimeoutMS,
	file.KeyStrategyTimeoutMS,
	file.KeyCacheTTLSeconds,
	file.KeyCacheLocalSize,
	file.KeyCacheSharedPath,
	file.KeyStoragePath,
	file.KeyEmbeddingProvider,
	file.KeyEmbeddingModel,
	file.KeyEmbeddingBaseURL,
	file.KeyEmbeddingAPIKey,
	file.KeyVectorEnabled,
	file.KeyVectorURL,
	file.KeyVectorAPIKey,
	file.KeyDictionaryDir,
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	keys := append([]string(nil), settingsKeys...)
	sort.Strings(keys)

	for _, key := range keys {
		val, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("%s = (unset)\n", key)
			continue
		}
		if strings.HasSuffix(key, "api_key") {
			val = "(set)"
		}
		cmd.Printf("%s = %v\n", key, val)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	if !knownSettingsKey(key) {
		return fmt.Errorf("unknown settings key: %s", key)
	}

	if err := configStore.Set(key, parseSettingsValue(raw)); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}

	cmd.Printf("%s = %s\n", key, raw)
	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	cmd.Println(configStore.Path())
	return nil
}

func knownSettingsKey(key string) bool {
	for _, k := range settingsKeys {
		if k == key {
			return true
		}
	}
	return false
}

// parseSettingsValue keeps TOML types usable: bools and numbers are
// stored typed, everything else as a string.
func parseSettingsValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
