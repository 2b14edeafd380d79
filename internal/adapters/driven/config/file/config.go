// Package file loads typed configuration from a TOML file.
//
// Configuration resolves in three layers: compiled defaults, then the
// TOML file, then environment variables for secrets. API keys never
// live in the file.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// validate checks struct tags on the loaded configuration.
var validate = validator.New()

// Config is the complete application configuration.
type Config struct {
	Storage      StorageConfig      `toml:"storage"`
	Chunking     ChunkingConfig     `toml:"chunking"`
	Retrieval    RetrievalConfig    `toml:"retrieval"`
	Verification VerificationConfig `toml:"verification"`
	Embedding    ProviderConfig     `toml:"embedding"`
	Reasoning    ProviderConfig     `toml:"reasoning"`
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	// DataDir is the database directory (default: ~/.claimlens/data).
	DataDir string `toml:"data_dir"`
}

// ChunkingConfig tunes the document chunker.
type ChunkingConfig struct {
	// MaxTokens is the chunk size ceiling (default: 200).
	MaxTokens int `toml:"max_tokens" validate:"gt=0"`

	// UseTiktoken switches to BPE token counting. Requires encoding
	// data; the default heuristic counter works offline.
	UseTiktoken bool `toml:"use_tiktoken"`
}

// RetrievalConfig tunes the hybrid retrieval engine.
type RetrievalConfig struct {
	// SemanticWeight is the fusion weight for the semantic score
	// (default: 0.7).
	SemanticWeight float64 `toml:"semantic_weight" validate:"gte=0"`

	// LexicalWeight is the fusion weight for the lexical score
	// (default: 0.3).
	LexicalWeight float64 `toml:"lexical_weight" validate:"gte=0"`

	// TopK is the default evidence set size (default: 5).
	TopK int `toml:"top_k" validate:"gt=0"`
}

// VerificationConfig tunes the verification engine.
type VerificationConfig struct {
	// NumericTolerance is the relative tolerance under which two
	// numbers count as the same figure (default: 0.05).
	NumericTolerance float64 `toml:"numeric_tolerance" validate:"gt=0,lt=1"`

	// ReasoningTimeoutSeconds bounds one reasoning call (default: 30).
	ReasoningTimeoutSeconds int `toml:"reasoning_timeout_seconds" validate:"gt=0"`
}

// ReasoningTimeout returns the configured timeout as a duration.
func (v VerificationConfig) ReasoningTimeout() time.Duration {
	return time.Duration(v.ReasoningTimeoutSeconds) * time.Second
}

// ProviderConfig selects and configures an AI collaborator.
type ProviderConfig struct {
	// Provider is openai, ollama, or none.
	Provider string `toml:"provider" validate:"oneof=openai ollama none"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url" validate:"omitempty,url"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// APIKeyEnv names the environment variable holding the API key
	// (default: OPENAI_API_KEY for the openai provider).
	APIKeyEnv string `toml:"api_key_env"`
}

// APIKey reads the provider's API key from the environment.
func (p ProviderConfig) APIKey() string {
	env := p.APIKeyEnv
	if env == "" && p.Provider == "openai" {
		env = "OPENAI_API_KEY"
	}
	if env == "" {
		return ""
	}
	return os.Getenv(env)
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Chunking: ChunkingConfig{
			MaxTokens: 200,
		},
		Retrieval: RetrievalConfig{
			SemanticWeight: 0.7,
			LexicalWeight:  0.3,
			TopK:           5,
		},
		Verification: VerificationConfig{
			NumericTolerance:        0.05,
			ReasoningTimeoutSeconds: 30,
		},
		Embedding: ProviderConfig{Provider: "none"},
		Reasoning: ProviderConfig{Provider: "none"},
	}
}

// DefaultPath returns the standard config file location,
// ~/.claimlens/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".claimlens", "config.toml"), nil
}

// Load reads the config file at path, layered over defaults. A missing
// file is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
