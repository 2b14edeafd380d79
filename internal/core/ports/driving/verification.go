package driving

import (
	"context"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
)

// VerificationSummary aggregates verdicts across a batch of claims.
type VerificationSummary struct {
	TotalClaims       int `json:"total_claims"`
	Verified          int `json:"verified"`
	Contradicted      int `json:"contradicted"`
	PartiallyVerified int `json:"partially_verified"`
	NotFound          int `json:"not_found"`
}

// VerificationReport is the outcome of verifying a batch of claims.
// One claim's failure never removes it from the report; failed claims
// appear as NOT_FOUND with an error annotation.
type VerificationReport struct {
	Results []domain.VerificationResult `json:"results"`
	Summary VerificationSummary         `json:"summary"`
}

// VerificationService maps claims plus retrieved evidence to verdicts
// with citations.
type VerificationService interface {
	// Verify produces a verdict for one claim from already-retrieved
	// evidence. Every citation in the result references a chunk from
	// the evidence set.
	Verify(ctx context.Context, claim domain.Claim, evidence []domain.RetrievalResult) (*domain.VerificationResult, error)

	// VerifyClaims retrieves evidence for each claim within the scope
	// and verifies all of them, returning a batch report.
	VerifyClaims(ctx context.Context, claims []domain.Claim, scope domain.RetrievalScope) (*VerificationReport, error)

	// VerifyTranscript extracts claims from raw transcript text, then
	// verifies each against the scope's corpus.
	VerifyTranscript(ctx context.Context, transcript string, scope domain.RetrievalScope) (*VerificationReport, error)
}
