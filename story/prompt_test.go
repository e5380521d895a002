package story

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPromptTemplate_WritesDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")

	tmpl, err := LoadPromptTemplate(dir)
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, PromptFile))
	require.NoError(t, err)
	assert.Equal(t, DefaultPromptTemplate, string(written))

	prompt, err := renderPrompt(tmpl, Short)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Make it exactly 50-100 words.")
	assert.Contains(t, prompt, "sci-fi")
	assert.Contains(t, prompt, "Don't include quotation marks")
}

func TestLoadPromptTemplate_UsesCustomFile(t *testing.T) {
	dir := t.TempDir()
	custom := `A {{.Length | upper}} tale of {{.WordCount}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, PromptFile), []byte(custom), 0o644))

	tmpl, err := LoadPromptTemplate(dir)
	require.NoError(t, err)

	prompt, err := renderPrompt(tmpl, Long)
	require.NoError(t, err)
	assert.Equal(t, "A LONG tale of 200-300 words", prompt)
}

func TestLoadPromptTemplate_InvalidTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PromptFile), []byte("Invalid {{.WordCount"), 0o644))

	_, err := LoadPromptTemplate(dir)
	assert.Error(t, err)
}

func TestLoadPromptTemplate_UnreadableFileIsNotReplaced(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PromptFile)
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err := LoadPromptTemplate(dir)
	require.Error(t, err)

	info, statErr := os.Stat(path)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir(), "existing entry must be left alone")
}
