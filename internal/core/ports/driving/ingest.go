package driving

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
)

// validate is the shared validator instance for request structs.
var validate = validator.New()

// IngestStatus tells the caller whether ingestion created a new
// document or resolved to an existing one.
type IngestStatus string

const (
	// IngestCreated means a new document row was created.
	IngestCreated IngestStatus = "created"

	// IngestExists means identical bytes were already ingested for the
	// company; no duplicate row, no duplicate chunking work.
	IngestExists IngestStatus = "exists"
)

// IngestRequest carries one document into the content store.
// Exactly one of Bytes or SourceURI must be provided.
type IngestRequest struct {
	// CompanyID scopes the document.
	CompanyID string `validate:"required"`

	// VersionLabel names the filing version (e.g. "q3-2025").
	VersionLabel string `validate:"required"`

	// Bytes is the raw document content, when the caller already has it.
	Bytes []byte

	// SourceURI is a remote location to fetch the content from.
	SourceURI string `validate:"omitempty,uri"`
}

// Validate checks the request's field constraints.
func (r *IngestRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if (len(r.Bytes) == 0) == (r.SourceURI == "") {
		return fmt.Errorf("%w: exactly one of bytes or source URI is required", domain.ErrInvalidInput)
	}
	return nil
}

// IngestResult is the outcome of an ingestion request.
type IngestResult struct {
	// DocumentID identifies the document, new or pre-existing.
	DocumentID string

	// Status is created or exists.
	Status IngestStatus
}

// IngestService is the content store's write path: content-addressed,
// idempotent document ingestion followed by chunking and indexing.
type IngestService interface {
	// Ingest stores the document, chunks it, and indexes the chunks.
	// Identical bytes under the same company resolve to the existing
	// document with status "exists".
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)
}
