package driven

import (
	"context"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
)

// DocumentStore persists documents and their chunks.
// Backed by SQLite; it is the only durable state the core owns.
type DocumentStore interface {
	// CreateDocument inserts a new document row. It returns
	// domain.ErrAlreadyExists when a document with the same
	// (CompanyID, ContentHash) pair already exists; the conflict check
	// is atomic so concurrent ingests of identical bytes cannot both
	// create rows.
	CreateDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// FindByContentHash looks up the document for a (company, hash)
	// pair. Returns domain.ErrNotFound when no such document exists.
	FindByContentHash(ctx context.Context, companyID, contentHash string) (*domain.Document, error)

	// UpdatePageCount records the number of pages extracted from the
	// document's content.
	UpdatePageCount(ctx context.Context, id string, pageCount int) error

	// UpdateStatus transitions a document's lifecycle state. It returns
	// domain.ErrInvalidTransition when the state machine forbids the
	// change, and never moves a document out of a terminal state.
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus) error

	// ListDocuments returns all documents for a company, newest first.
	ListDocuments(ctx context.Context, companyID string) ([]domain.Document, error)

	// LatestCompleted returns the most recently created completed
	// document for a company, or domain.ErrNotFound.
	LatestCompleted(ctx context.Context, companyID string) (*domain.Document, error)

	// ReplaceChunks atomically replaces the whole chunk set for a
	// document. All-or-nothing: readers never observe a partial set.
	ReplaceChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// GetChunks retrieves a document's chunks ordered by chunk index.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunksByIDs retrieves specific chunks by ID. Missing IDs are
	// skipped, not errors.
	GetChunksByIDs(ctx context.Context, ids []string) ([]domain.Chunk, error)

	// DeleteDocument removes a document record, invalidating its chunks.
	DeleteDocument(ctx context.Context, id string) error
}
