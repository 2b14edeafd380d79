package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
)

func TestDocumentStore_CreateAndGet(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{
		ID:          "doc-1",
		CompanyID:   "acme",
		ContentHash: "hash-1",
		Status:      domain.StatusProcessing,
	}
	require.NoError(t, store.CreateDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "acme", got.CompanyID)

	_, err = store.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_DuplicateContentHash(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.CreateDocument(ctx, &domain.Document{
		ID: "doc-1", CompanyID: "acme", ContentHash: "hash-1", Status: domain.StatusProcessing,
	}))

	err := store.CreateDocument(ctx, &domain.Document{
		ID: "doc-2", CompanyID: "acme", ContentHash: "hash-1", Status: domain.StatusProcessing,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestDocumentStore_UpdateStatus(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.CreateDocument(ctx, &domain.Document{
		ID: "doc-1", CompanyID: "acme", ContentHash: "hash-1", Status: domain.StatusProcessing,
	}))

	require.NoError(t, store.UpdateStatus(ctx, "doc-1", domain.StatusCompleted))

	err := store.UpdateStatus(ctx, "doc-1", domain.StatusProcessing)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDocumentStore_UpdatePageCount(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.CreateDocument(ctx, &domain.Document{
		ID: "doc-1", CompanyID: "acme", ContentHash: "hash-1", Status: domain.StatusProcessing,
	}))

	require.NoError(t, store.UpdatePageCount(ctx, "doc-1", 4))

	doc, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 4, doc.PageCount)

	err = store.UpdatePageCount(ctx, "missing", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_LatestCompleted(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	older := &domain.Document{
		ID: "doc-1", CompanyID: "acme", ContentHash: "hash-1",
		Status: domain.StatusProcessing, CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, store.CreateDocument(ctx, older))
	require.NoError(t, store.UpdateStatus(ctx, "doc-1", domain.StatusCompleted))

	newer := &domain.Document{
		ID: "doc-2", CompanyID: "acme", ContentHash: "hash-2", Status: domain.StatusProcessing,
	}
	require.NoError(t, store.CreateDocument(ctx, newer))

	got, err := store.LatestCompleted(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", got.ID)
}

func TestDocumentStore_Chunks(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	chunks := []domain.Chunk{
		{ID: "c-2", DocumentID: "doc-1", Index: 1, Text: "second"},
		{ID: "c-1", DocumentID: "doc-1", Index: 0, Text: "first"},
	}
	require.NoError(t, store.ReplaceChunks(ctx, "doc-1", chunks))

	got, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Text)

	byID, err := store.GetChunksByIDs(ctx, []string{"c-2", "missing"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "second", byID[0].Text)
}

func TestAuditLog_Record(t *testing.T) {
	audit := NewAuditLog()

	require.NoError(t, audit.Record(context.Background(), domain.VerificationResult{
		Claim:   domain.Claim{Text: "revenue grew"},
		Verdict: domain.VerdictVerified,
	}))

	records := audit.Records()
	require.Len(t, records, 1)
	assert.Equal(t, domain.VerdictVerified, records[0].Verdict)
}
