// Package memory provides in-memory implementations of driven port
// interfaces for testing and ephemeral use. All stores are safe for
// concurrent access.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driven"
)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu     sync.RWMutex
	docs   map[string]domain.Document
	chunks map[string][]domain.Chunk // keyed by document ID
}

var _ driven.DocumentStore = (*DocumentStore)(nil)

// NewDocumentStore creates an empty in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs:   make(map[string]domain.Document),
		chunks: make(map[string][]domain.Chunk),
	}
}

// CreateDocument inserts a new document.
func (s *DocumentStore) CreateDocument(_ context.Context, doc *domain.Document) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.docs {
		if existing.CompanyID == doc.CompanyID && existing.ContentHash == doc.ContentHash {
			return fmt.Errorf("document for company %s with hash %s: %w",
				doc.CompanyID, doc.ContentHash, domain.ErrAlreadyExists)
		}
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	s.docs[doc.ID] = *doc
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// FindByContentHash looks up the document for a (company, hash) pair.
func (s *DocumentStore) FindByContentHash(_ context.Context, companyID, contentHash string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.docs {
		if doc.CompanyID == companyID && doc.ContentHash == contentHash {
			found := doc
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

// UpdateStatus transitions a document's lifecycle state.
// UpdatePageCount records the number of pages extracted from the
// document's content.
func (s *DocumentStore) UpdatePageCount(_ context.Context, id string, pageCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return domain.ErrNotFound
	}

	doc.PageCount = pageCount
	doc.UpdatedAt = time.Now().UTC()
	s.docs[id] = doc
	return nil
}

func (s *DocumentStore) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("status %q: %w", status, domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !doc.Status.CanTransition(status) {
		return fmt.Errorf("status %s to %s: %w", doc.Status, status, domain.ErrInvalidTransition)
	}

	doc.Status = status
	doc.UpdatedAt = time.Now().UTC()
	s.docs[id] = doc
	return nil
}

// ListDocuments returns all documents for a company, newest first.
func (s *DocumentStore) ListDocuments(_ context.Context, companyID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []domain.Document
	for _, doc := range s.docs {
		if doc.CompanyID == companyID {
			docs = append(docs, doc)
		}
	}

	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}
		return docs[i].ID > docs[j].ID
	})
	return docs, nil
}

// LatestCompleted returns the most recently created completed document.
func (s *DocumentStore) LatestCompleted(ctx context.Context, companyID string) (*domain.Document, error) {
	docs, err := s.ListDocuments(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if doc.Status == domain.StatusCompleted {
			found := doc
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ReplaceChunks atomically replaces the whole chunk set for a document.
func (s *DocumentStore) ReplaceChunks(_ context.Context, documentID string, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]domain.Chunk, len(chunks))
	copy(copied, chunks)
	sort.Slice(copied, func(i, j int) bool { return copied[i].Index < copied[j].Index })
	s.chunks[documentID] = copied
	return nil
}

// GetChunks retrieves a document's chunks ordered by chunk index.
func (s *DocumentStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := make([]domain.Chunk, len(s.chunks[documentID]))
	copy(chunks, s.chunks[documentID])
	return chunks, nil
}

// GetChunksByIDs retrieves specific chunks by ID, skipping missing IDs.
func (s *DocumentStore) GetChunksByIDs(_ context.Context, ids []string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var result []domain.Chunk
	for _, chunks := range s.chunks {
		for _, chunk := range chunks {
			if wanted[chunk.ID] {
				result = append(result, chunk)
			}
		}
	}
	return result, nil
}

// DeleteDocument removes a document and its chunks.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, id)
	delete(s.chunks, id)
	return nil
}
