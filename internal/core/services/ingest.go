package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/verity-labs/claimlens-cli/internal/chunker"
	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driven"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driving"
	"github.com/verity-labs/claimlens-cli/internal/logger"
	"github.com/verity-labs/claimlens-cli/internal/normalisers"
	"github.com/verity-labs/claimlens-cli/internal/retry"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService is the content store's write path. Documents are
// content-addressed by SHA-256 over the raw bytes, so re-ingesting
// identical content is a cheap no-op.
type IngestService struct {
	docStore         driven.DocumentStore
	registry         *normalisers.Registry
	chunker          *chunker.Chunker
	embeddingService driven.EmbeddingService
	fetcher          driven.ContentFetcher
	retryPolicy      retry.Policy

	// mu serialises the create-and-process section across all ingests,
	// so concurrent requests for identical bytes hit the store's
	// uniqueness check one at a time.
	mu sync.Mutex
}

// NewIngestService creates a new ingest service. The embeddingService
// and fetcher parameters are optional (can be nil).
func NewIngestService(
	docStore driven.DocumentStore,
	registry *normalisers.Registry,
	chk *chunker.Chunker,
	embeddingService driven.EmbeddingService,
	fetcher driven.ContentFetcher,
) *IngestService {
	return &IngestService{
		docStore:         docStore,
		registry:         registry,
		chunker:          chk,
		embeddingService: embeddingService,
		fetcher:          fetcher,
		retryPolicy:      retry.DefaultPolicy(),
	}
}

// SetRetryPolicy overrides the retry policy for collaborator calls.
func (s *IngestService) SetRetryPolicy(p retry.Policy) {
	s.retryPolicy = p
}

// ContentHash returns the hex SHA-256 digest of the raw bytes.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Ingest stores the document, chunks it, and indexes the chunks.
func (s *IngestService) Ingest(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	logger.Section("Document Ingestion")

	if err := req.Validate(); err != nil {
		return nil, err
	}

	data := req.Bytes
	if len(data) == 0 {
		fetched, err := s.fetchContent(ctx, req.SourceURI)
		if err != nil {
			return nil, err
		}
		data = fetched
	}

	hash := ContentHash(data)
	logger.Debug("Content hash: %s", hash)

	// Fast path: identical bytes already ingested for this company.
	if existing, err := s.docStore.FindByContentHash(ctx, req.CompanyID, hash); err == nil {
		logger.Debug("Content already ingested as document %s", existing.ID)
		return &driving.IngestResult{DocumentID: existing.ID, Status: driving.IngestExists}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("looking up content hash: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &domain.Document{
		ID:           uuid.New().String(),
		CompanyID:    req.CompanyID,
		VersionLabel: req.VersionLabel,
		ContentHash:  hash,
		SourceURI:    req.SourceURI,
		Status:       domain.StatusProcessing,
	}

	if err := s.docStore.CreateDocument(ctx, doc); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost the race to a concurrent ingest of the same bytes.
			existing, lookupErr := s.docStore.FindByContentHash(ctx, req.CompanyID, hash)
			if lookupErr != nil {
				return nil, fmt.Errorf("resolving concurrent ingest: %w", lookupErr)
			}
			return &driving.IngestResult{DocumentID: existing.ID, Status: driving.IngestExists}, nil
		}
		return nil, fmt.Errorf("creating document: %w", err)
	}

	if err := s.process(ctx, doc, data); err != nil {
		logger.Warn("Ingestion failed for document %s: %v", doc.ID, err)
		if statusErr := s.docStore.UpdateStatus(ctx, doc.ID, domain.StatusFailed); statusErr != nil {
			logger.Warn("Failed to mark document %s failed: %v", doc.ID, statusErr)
		}
		return nil, err
	}

	if err := s.docStore.UpdateStatus(ctx, doc.ID, domain.StatusCompleted); err != nil {
		return nil, fmt.Errorf("completing document: %w", err)
	}

	logger.Info("Ingested document %s (%d pages)", doc.ID, doc.PageCount)
	return &driving.IngestResult{DocumentID: doc.ID, Status: driving.IngestCreated}, nil
}

// process extracts, chunks, embeds, and stores the document content.
func (s *IngestService) process(ctx context.Context, doc *domain.Document, data []byte) error {
	extractor, err := s.registry.ExtractorFor(data)
	if err != nil {
		return err
	}
	logger.Debug("Using %s extractor", extractor.Name())

	extraction, err := extractor.Extract(ctx, data)
	if err != nil {
		return fmt.Errorf("extracting content: %w", err)
	}

	doc.PageCount = len(extraction.Pages)
	if err := s.docStore.UpdatePageCount(ctx, doc.ID, doc.PageCount); err != nil {
		return fmt.Errorf("recording page count: %w", err)
	}

	chunks := s.chunker.Chunk(doc.ID, extraction.Pages)
	for i := range chunks {
		chunks[i].ID = uuid.New().String()
	}
	logger.Debug("Chunked into %d chunks", len(chunks))

	if s.embeddingService != nil && len(chunks) > 0 {
		if err := s.embedChunks(ctx, chunks); err != nil {
			// Embeddings are an enrichment; lexical retrieval still
			// works without them.
			logger.Warn("Embedding failed, storing chunks without vectors: %v", err)
		}
	}

	err = retry.Do(ctx, s.retryPolicy, "replace chunks", func(ctx context.Context) error {
		return s.docStore.ReplaceChunks(ctx, doc.ID, chunks)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}

	return nil
}

// embedChunks fills in chunk embeddings via the batch endpoint.
func (s *IngestService) embedChunks(ctx context.Context, chunks []domain.Chunk) error {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	var vectors [][]float32
	err := retry.Do(ctx, s.retryPolicy, "embed chunks", func(ctx context.Context) error {
		var embedErr error
		vectors, embedErr = s.embeddingService.EmbedBatch(ctx, texts)
		return embedErr
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: got %d vectors for %d chunks",
			domain.ErrEmbeddingUnavailable, len(vectors), len(chunks))
	}

	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}
	return nil
}

// fetchContent downloads remote content with retries.
func (s *IngestService) fetchContent(ctx context.Context, uri string) ([]byte, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: no content fetcher configured", domain.ErrInvalidInput)
	}

	var data []byte
	err := retry.Do(ctx, s.retryPolicy, "fetch content", func(ctx context.Context) error {
		var fetchErr error
		data, fetchErr = s.fetcher.Fetch(ctx, uri)
		return fetchErr
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", uri, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty content at %s", domain.ErrContentFormat, uri)
	}
	return data, nil
}
