// Package domain defines the core business entities for Claimlens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A content-addressed source document with version metadata
//   - Chunk: An ordered span of normalised text within a document
//   - Claim: A factual statement extracted from spoken content
//   - RetrievalResult: A scored evidence chunk for a query
//   - VerificationResult: The verdict for a claim with citations
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
