package domain

import "errors"

// RetrievalScope restricts retrieval to an explicit document set.
// Exactly one of DocumentID or CompanyID must be set: either a single
// document version, or the most recent completed version per company.
// Mixing stale and current versions silently is not allowed.
type RetrievalScope struct {
	// DocumentID limits retrieval to one document version.
	DocumentID string

	// CompanyID limits retrieval to the company's most recent
	// completed document.
	CompanyID string
}

// ScopeDocument returns a scope covering a single document.
func ScopeDocument(documentID string) RetrievalScope {
	return RetrievalScope{DocumentID: documentID}
}

// ScopeCompanyLatest returns a scope covering the most recent completed
// document for a company.
func ScopeCompanyLatest(companyID string) RetrievalScope {
	return RetrievalScope{CompanyID: companyID}
}

// Validate ensures exactly one scope dimension is set.
func (s RetrievalScope) Validate() error {
	if (s.DocumentID == "") == (s.CompanyID == "") {
		return errors.New("retrieval scope requires exactly one of document ID or company ID")
	}
	return nil
}

// FusionWeights control how lexical and semantic scores combine.
// The weights are tunable configuration, not calibrated constants.
type FusionWeights struct {
	// Semantic is the weight applied to the semantic score.
	Semantic float64

	// Lexical is the weight applied to the lexical score.
	Lexical float64
}

// DefaultFusionWeights biases fusion toward the semantic signal.
func DefaultFusionWeights() FusionWeights {
	return FusionWeights{Semantic: 0.7, Lexical: 0.3}
}

// Normalised returns the weights scaled to sum to 1. Non-positive
// totals fall back to the defaults.
func (w FusionWeights) Normalised() FusionWeights {
	total := w.Semantic + w.Lexical
	if total <= 0 {
		return DefaultFusionWeights()
	}
	return FusionWeights{
		Semantic: w.Semantic / total,
		Lexical:  w.Lexical / total,
	}
}

// RetrievalResult is an ephemeral ranking record for one evidence chunk.
// It is recomputed per query and never persisted.
type RetrievalResult struct {
	// ChunkID is the ranked chunk.
	ChunkID string

	// Chunk is the hydrated chunk, included so callers can cite
	// excerpts and page numbers without a second lookup.
	Chunk Chunk

	// LexicalScore is the token-overlap score in [0,1].
	LexicalScore float64

	// SemanticScore is the rescaled cosine similarity in [0,1].
	// Zero when either vector was absent.
	SemanticScore float64

	// FusedScore is the weighted combination used for ranking.
	FusedScore float64
}
