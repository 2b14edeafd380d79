package driven

import (
	"context"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
)

// AuditLog receives completed verification results for durable storage.
// Fire-and-forget from the core's perspective: the verification engine
// logs a failure here but never fails the verification call because of it.
type AuditLog interface {
	// Record appends a completed verification result.
	Record(ctx context.Context, result domain.VerificationResult) error
}

// ContentFetcher retrieves raw document bytes from a remote location.
// The ingest service wraps calls in its bounded retry policy.
type ContentFetcher interface {
	// Fetch downloads the content at the given URI.
	Fetch(ctx context.Context, uri string) ([]byte, error)
}
