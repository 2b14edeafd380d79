package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-labs/claimlens-cli/internal/adapters/driven/storage/memory"
	"github.com/verity-labs/claimlens-cli/internal/core/domain"
)

func TestExtractCompanyID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"claimlens://companies/acme/documents", "acme"},
		{"claimlens://companies/acme-corp/documents", "acme-corp"},
		{"claimlens://companies/acme", ""},
		{"claimlens://documents/doc-1/chunks", ""},
		{"http://example.com", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractCompanyID(tt.uri), "uri %q", tt.uri)
	}
}

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"claimlens://documents/doc-1/chunks", "doc-1"},
		{"claimlens://documents/doc-1", ""},
		{"claimlens://companies/acme/documents", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractDocumentID(tt.uri), "uri %q", tt.uri)
	}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	store := memory.NewDocumentStore()
	doc := &domain.Document{
		ID:           "doc-1",
		CompanyID:    "acme",
		VersionLabel: "q3-2025",
		ContentHash:  "abc",
		Status:       domain.StatusProcessing,
	}
	require.NoError(t, store.CreateDocument(ctx, doc))
	require.NoError(t, store.UpdateStatus(ctx, "doc-1", domain.StatusCompleted))

	ports := newTestPorts()
	ports.Documents = store
	server, err := NewServer(ports)
	require.NoError(t, err)

	t.Run("lists a company's documents", func(t *testing.T) {
		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "claimlens://companies/acme/documents"},
		}
		result, err := server.handleDocumentsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "doc-1")
		assert.Contains(t, result.Contents[0].Text, "q3-2025")
		assert.Contains(t, result.Contents[0].Text, "completed")
	})

	t.Run("rejects malformed URI", func(t *testing.T) {
		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "claimlens://companies/acme"},
		}
		_, err := server.handleDocumentsResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("errors without a document store", func(t *testing.T) {
		bare, err := NewServer(newTestPorts())
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "claimlens://companies/acme/documents"},
		}
		_, err = bare.handleDocumentsResource(ctx, req)

		require.Error(t, err)
	})
}

func TestServer_handleChunksResource(t *testing.T) {
	ctx := context.Background()

	store := memory.NewDocumentStore()
	doc := &domain.Document{
		ID:           "doc-1",
		CompanyID:    "acme",
		VersionLabel: "q3-2025",
		ContentHash:  "abc",
		Status:       domain.StatusProcessing,
	}
	require.NoError(t, store.CreateDocument(ctx, doc))
	require.NoError(t, store.ReplaceChunks(ctx, "doc-1", []domain.Chunk{
		{ID: "chunk-1", DocumentID: "doc-1", Index: 0, Text: "Revenue was $1.2 million."},
	}))

	ports := newTestPorts()
	ports.Documents = store
	server, err := NewServer(ports)
	require.NoError(t, err)

	req := &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "claimlens://documents/doc-1/chunks"},
	}
	result, err := server.handleChunksResource(ctx, req)

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Contains(t, result.Contents[0].Text, "chunk-1")
	assert.Contains(t, result.Contents[0].Text, "Revenue was $1.2 million.")
}
