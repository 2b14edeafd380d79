package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Chunking.MaxTokens)
	assert.Equal(t, 0.7, cfg.Retrieval.SemanticWeight)
	assert.Equal(t, 0.3, cfg.Retrieval.LexicalWeight)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, 0.05, cfg.Verification.NumericTolerance)
	assert.Equal(t, "none", cfg.Embedding.Provider)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[chunking]
max_tokens = 300

[retrieval]
semantic_weight = 0.5
lexical_weight = 0.5
top_k = 10

[verification]
numeric_tolerance = 0.02
reasoning_timeout_seconds = 60

[embedding]
provider = "ollama"
model = "nomic-embed-text"

[reasoning]
provider = "openai"
model = "gpt-4o"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.Chunking.MaxTokens)
	assert.Equal(t, 0.5, cfg.Retrieval.SemanticWeight)
	assert.Equal(t, 10, cfg.Retrieval.TopK)
	assert.Equal(t, 0.02, cfg.Verification.NumericTolerance)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, "gpt-4o", cfg.Reasoning.Model)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown provider",
			content: "[embedding]\nprovider = \"magic\"\n",
		},
		{
			name:    "negative chunk size",
			content: "[chunking]\nmax_tokens = -1\n",
		},
		{
			name:    "tolerance out of range",
			content: "[verification]\nnumeric_tolerance = 1.5\n",
		},
		{
			name:    "malformed toml",
			content: "[retrieval\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestProviderConfig_APIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CUSTOM_KEY", "custom-value")

	assert.Equal(t, "sk-test", ProviderConfig{Provider: "openai"}.APIKey())
	assert.Equal(t, "custom-value", ProviderConfig{Provider: "openai", APIKeyEnv: "CUSTOM_KEY"}.APIKey())
	assert.Empty(t, ProviderConfig{Provider: "ollama"}.APIKey())
}
