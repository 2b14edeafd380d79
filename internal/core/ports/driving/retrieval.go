package driving

import (
	"context"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
)

// DefaultTopK is the evidence set size when the caller does not choose one.
const DefaultTopK = 5

// RetrievalOptions tune a retrieval query.
type RetrievalOptions struct {
	// TopK is the maximum number of results (default DefaultTopK).
	TopK int

	// QueryEmbedding overrides embedding generation for the query.
	// When nil and an embedding service is configured, the engine
	// embeds the query itself.
	QueryEmbedding []float32
}

// RetrievalService ranks evidence chunks for a query within an
// explicit scope.
type RetrievalService interface {
	// Retrieve returns up to TopK chunks ordered by non-increasing
	// fused score, ties broken by ascending chunk index. An empty
	// candidate set yields an empty result, not an error.
	Retrieve(ctx context.Context, query string, scope domain.RetrievalScope, opts RetrievalOptions) ([]domain.RetrievalResult, error)
}
