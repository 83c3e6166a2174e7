package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionary_DefaultsOnly(t *testing.T) {
	d, err := New("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	assert.Contains(t, d.TherapeuticTerms(), "anxiety")
	assert.Contains(t, d.CulturalTerms(), "buddhist")
	assert.True(t, d.Stopwords()["the"])
	assert.Contains(t, d.TherapeuticSynonyms("anxiety"), "worry")
	assert.Contains(t, d.CulturalSynonyms("Buddhist", "meditation"), "vipassana")
	assert.Contains(t, d.Synonyms("calm"), "peaceful")
}

func TestDictionary_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
terms = ["serenity", "balance"]

[synonyms]
serenity = ["stillness"]
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "therapeutic.toml"), content, 0644))

	d, err := New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	assert.Equal(t, []string{"serenity", "balance"}, d.TherapeuticTerms())
	assert.Equal(t, []string{"stillness"}, d.TherapeuticSynonyms("Serenity"))

	// Files that were not overridden keep their defaults.
	assert.Contains(t, d.CulturalTerms(), "buddhist")
}

func TestDictionary_CorruptFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stopwords.toml"), []byte("not toml {{{"), 0644))

	d, err := New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	assert.True(t, d.Stopwords()["the"], "a bad edit must not take the defaults down")
}

func TestDictionary_HotReload(t *testing.T) {
	dir := t.TempDir()

	d, err := New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	assert.NotContains(t, d.TherapeuticTerms(), "equanimity")

	content := []byte(`terms = ["equanimity"]`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "therapeutic.toml"), content, 0644))

	require.Eventually(t, func() bool {
		terms := d.TherapeuticTerms()
		return len(terms) == 1 && terms[0] == "equanimity"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestDictionary_UnknownCulture(t *testing.T) {
	d, err := New("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	assert.Nil(t, d.CulturalSynonyms("martian", "meditation"))
}
