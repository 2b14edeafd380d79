// Package cli implements the claimlens command-line interface.
package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/verity-labs/claimlens-cli/internal/adapters/driven/config/file"
	"github.com/verity-labs/claimlens-cli/internal/adapters/driven/embedding/ollama"
	"github.com/verity-labs/claimlens-cli/internal/adapters/driven/embedding/openai"
	"github.com/verity-labs/claimlens-cli/internal/adapters/driven/fetch"
	reasonollama "github.com/verity-labs/claimlens-cli/internal/adapters/driven/reasoning/ollama"
	reasonopenai "github.com/verity-labs/claimlens-cli/internal/adapters/driven/reasoning/openai"
	"github.com/verity-labs/claimlens-cli/internal/adapters/driven/storage/sqlite"
	"github.com/verity-labs/claimlens-cli/internal/chunker"
	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driven"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driving"
	"github.com/verity-labs/claimlens-cli/internal/core/services"
	"github.com/verity-labs/claimlens-cli/internal/logger"
	"github.com/verity-labs/claimlens-cli/internal/normalisers"
	"github.com/verity-labs/claimlens-cli/internal/normalisers/pdf"
	"github.com/verity-labs/claimlens-cli/internal/normalisers/plaintext"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose    bool
	configPath string
)

// Services injected into commands. Populated by initServices, or
// directly by tests.
var (
	ingestService       driving.IngestService
	retrievalService    driving.RetrievalService
	verificationService driving.VerificationService
	docStore            driven.DocumentStore
)

var rootCmd = &cobra.Command{
	Use:   "claimlens",
	Short: "Verify spoken claims against filed documents",
	Long: `ClaimLens ingests company filings, chunks and indexes them, and
verifies factual claims from earnings calls and interviews against the
indexed evidence. Every verdict carries citations into the source
document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Secrets may live in a local .env; absence is fine.
		_ = godotenv.Load()
		logger.SetVerbose(verbose)

		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.claimlens/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires the adapters into the core services from the
// loaded configuration. Tests bypass this by setting the service vars
// directly.
func initServices() error {
	if ingestService != nil {
		return nil
	}

	path := configPath
	if path == "" {
		var err error
		path, err = file.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := file.Load(path)
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	docStore = store.DocumentStore()

	registry := normalisers.NewRegistry(pdf.New(), plaintext.New())

	chunkerOpts := []chunker.Option{chunker.WithMaxTokens(cfg.Chunking.MaxTokens)}
	if cfg.Chunking.UseTiktoken {
		counter, err := chunker.NewTiktokenCounter()
		if err != nil {
			logger.Warn("Tiktoken unavailable, using heuristic counter: %v", err)
		} else {
			chunkerOpts = append(chunkerOpts, chunker.WithTokenCounter(counter))
		}
	}
	chk := chunker.New(chunkerOpts...)

	embedder, err := newEmbeddingService(cfg.Embedding)
	if err != nil {
		return err
	}

	reasoner, extractor, err := newReasoningService(cfg.Reasoning)
	if err != nil {
		return err
	}

	fetcher := fetch.NewHTTPFetcher(fetch.Config{})

	ingestService = services.NewIngestService(docStore, registry, chk, embedder, fetcher)

	weights := domain.FusionWeights{
		Semantic: cfg.Retrieval.SemanticWeight,
		Lexical:  cfg.Retrieval.LexicalWeight,
	}
	retrieval := services.NewRetrievalService(docStore, embedder, weights)
	retrievalService = retrieval

	verification := services.NewVerificationService(retrieval, reasoner, extractor, store.AuditLog())
	verification.SetNumericTolerance(cfg.Verification.NumericTolerance)
	verification.SetReasoningTimeout(cfg.Verification.ReasoningTimeout())
	verificationService = verification

	return nil
}

// newEmbeddingService builds the configured embedding collaborator.
// Provider "none" returns nil; retrieval degrades to lexical scoring.
func newEmbeddingService(cfg file.ProviderConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey:  cfg.APIKey(),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	case "none", "":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
}

// newReasoningService builds the configured reasoning collaborator.
// Both providers also extract claims from transcripts.
func newReasoningService(cfg file.ProviderConfig) (driven.ReasoningService, driven.ClaimExtractor, error) {
	switch cfg.Provider {
	case "openai":
		svc, err := reasonopenai.NewService(reasonopenai.Config{
			APIKey:  cfg.APIKey(),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		if err != nil {
			return nil, nil, err
		}
		return svc, svc, nil
	case "ollama":
		svc := reasonollama.NewService(reasonollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		return svc, svc, nil
	case "none", "":
		return nil, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown reasoning provider: %s", cfg.Provider)
}

// scopeFromFlags builds a retrieval scope from the shared
// --document/--company flag pair.
func scopeFromFlags(documentID, companyID string) (domain.RetrievalScope, error) {
	scope := domain.RetrievalScope{DocumentID: documentID, CompanyID: companyID}
	if err := scope.Validate(); err != nil {
		return domain.RetrievalScope{}, err
	}
	return scope, nil
}
