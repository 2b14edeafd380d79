package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driven"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driving"
	"github.com/verity-labs/claimlens-cli/internal/logger"
	"github.com/verity-labs/claimlens-cli/internal/normalisers"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService ranks evidence chunks with hybrid lexical plus
// semantic scoring. The embedding service is optional; without it the
// engine degrades to pure lexical ranking.
type RetrievalService struct {
	docStore         driven.DocumentStore
	embeddingService driven.EmbeddingService
	weights          domain.FusionWeights
}

// NewRetrievalService creates a new retrieval service.
// The embeddingService parameter is optional (can be nil).
func NewRetrievalService(
	docStore driven.DocumentStore,
	embeddingService driven.EmbeddingService,
	weights domain.FusionWeights,
) *RetrievalService {
	return &RetrievalService{
		docStore:         docStore,
		embeddingService: embeddingService,
		weights:          weights.Normalised(),
	}
}

// Retrieve returns up to TopK chunks ordered by non-increasing fused
// score, ties broken by ascending chunk index.
func (s *RetrievalService) Retrieve(
	ctx context.Context, query string, scope domain.RetrievalScope, opts driving.RetrievalOptions,
) ([]domain.RetrievalResult, error) {
	logger.Section("Evidence Retrieval")
	logger.Debug("Query: %q", query)

	if err := scope.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.RetrievalResult{}, nil
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = driving.DefaultTopK
	}

	chunks, err := s.scopedChunks(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		logger.Debug("No candidate chunks in scope")
		return []domain.RetrievalResult{}, nil
	}

	queryTokens := normalisers.Tokenize(normalisers.NormalizeText(query))
	queryVector := s.queryVector(ctx, query, opts)

	results := make([]domain.RetrievalResult, 0, len(chunks))
	for _, chunk := range chunks {
		results = append(results, s.score(chunk, queryTokens, queryVector))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].FusedScore != results[j].FusedScore {
			return results[i].FusedScore > results[j].FusedScore
		}
		return results[i].Chunk.Index < results[j].Chunk.Index
	})

	if len(results) > topK {
		results = results[:topK]
	}
	logger.Debug("Returning %d results", len(results))
	return results, nil
}

// scopedChunks loads the candidate chunk set for the scope.
func (s *RetrievalService) scopedChunks(ctx context.Context, scope domain.RetrievalScope) ([]domain.Chunk, error) {
	documentID := scope.DocumentID
	if documentID == "" {
		doc, err := s.docStore.LatestCompleted(ctx, scope.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("resolving latest document for company %s: %w", scope.CompanyID, err)
		}
		documentID = doc.ID
	} else {
		// Fail loudly on a dangling document reference.
		if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
			return nil, fmt.Errorf("resolving document %s: %w", documentID, err)
		}
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}
	return chunks, nil
}

// queryVector resolves the query embedding: caller-supplied wins, then
// the embedding service, then none. Embedding failure degrades to
// lexical-only scoring instead of failing the query.
func (s *RetrievalService) queryVector(ctx context.Context, query string, opts driving.RetrievalOptions) []float32 {
	if len(opts.QueryEmbedding) > 0 {
		return opts.QueryEmbedding
	}
	if s.embeddingService == nil {
		return nil
	}

	vector, err := s.embeddingService.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed, lexical-only ranking: %v", err)
		return nil
	}
	return vector
}

// score computes the hybrid score for one chunk. When either vector is
// missing the chunk is ranked by its lexical score alone.
func (s *RetrievalService) score(chunk domain.Chunk, queryTokens []string, queryVector []float32) domain.RetrievalResult {
	result := domain.RetrievalResult{
		ChunkID:      chunk.ID,
		Chunk:        chunk,
		LexicalScore: lexicalScore(queryTokens, chunk.Text),
	}

	if len(queryVector) > 0 && len(chunk.Embedding) == len(queryVector) {
		result.SemanticScore = rescaleCosine(cosineSimilarity(queryVector, chunk.Embedding))
		result.FusedScore = s.weights.Semantic*result.SemanticScore + s.weights.Lexical*result.LexicalScore
	} else {
		result.FusedScore = result.LexicalScore
	}

	return result
}

// lexicalScore is the fraction of distinct query tokens present in the
// chunk, in [0,1].
func lexicalScore(queryTokens []string, chunkText string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	chunkSet := make(map[string]bool)
	for _, token := range normalisers.Tokenize(chunkText) {
		chunkSet[token] = true
	}

	querySet := make(map[string]bool, len(queryTokens))
	matched := 0
	for _, token := range queryTokens {
		if querySet[token] {
			continue
		}
		querySet[token] = true
		if chunkSet[token] {
			matched++
		}
	}

	return float64(matched) / float64(len(querySet))
}

// cosineSimilarity computes the cosine of the angle between two
// equal-length vectors, in [-1,1]. Zero vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// rescaleCosine maps cosine similarity from [-1,1] to [0,1] so it can
// blend with the lexical score.
func rescaleCosine(cos float64) float64 {
	return (cos + 1) / 2
}
