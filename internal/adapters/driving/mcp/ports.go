package mcp

import (
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driven"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval ranks evidence chunks for a query.
	Retrieval driving.RetrievalService

	// Verification produces verdicts with citations.
	Verification driving.VerificationService

	// Ingest stores new documents. Optional; without it the
	// ingest_document tool reports an error.
	Ingest driving.IngestService

	// Documents backs the read-only document resources. Optional.
	Documents driven.DocumentStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	if p.Verification == nil {
		return ErrMissingVerificationService
	}
	return nil
}
