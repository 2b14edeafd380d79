package driven

import (
	"context"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
)

// ReasoningService is the external collaborator that judges whether a
// piece of evidence supports a claim. The verification engine treats its
// output as raw material: the engine, not the collaborator, applies the
// numeric tolerance policy and decides the final verdict.
//
// Calls must honour the context deadline; the verification engine
// bounds every call and falls back to NOT_FOUND on timeout.
type ReasoningService interface {
	// Judge assesses the claim against the evidence chunks and returns
	// a structured judgment. The returned CitedChunkIDs should be drawn
	// from the evidence set; the engine discards any that are not.
	Judge(ctx context.Context, claimText string, evidence []domain.Chunk) (*domain.Judgment, error)

	// ModelName returns the name of the reasoning model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ClaimExtractor turns raw spoken-content text into claims.
// The core treats it as an opaque producer: whatever it returns is
// accepted without retry or caching logic here.
type ClaimExtractor interface {
	// Extract returns the factual claims found in the transcript.
	// An empty transcript yields an empty slice, not an error.
	Extract(ctx context.Context, transcript string) ([]domain.Claim, error)
}
