package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driving"
)

func newTestPorts() *Ports {
	return &Ports{
		Retrieval:    &mockRetrievalService{},
		Verification: &mockVerificationService{},
	}
}

func TestServer_handleRetrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked chunks", func(t *testing.T) {
		ports := newTestPorts()
		ports.Retrieval = &mockRetrievalService{
			results: []domain.RetrievalResult{
				{
					ChunkID: "chunk-1",
					Chunk: domain.Chunk{
						ID:         "chunk-1",
						DocumentID: "doc-1",
						Index:      3,
						PageNumber: 2,
						Text:       "Revenue was $1.2 million.",
					},
					LexicalScore:  0.5,
					SemanticScore: 0.9,
					FusedScore:    0.78,
				},
			},
		}

		server, err := NewServer(ports)
		require.NoError(t, err)

		input := RetrieveInput{Query: "revenue", DocumentID: "doc-1"}
		_, output, err := server.handleRetrieve(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Chunks, 1)
		assert.Equal(t, "chunk-1", output.Chunks[0].ChunkID)
		assert.Equal(t, "doc-1", output.Chunks[0].DocumentID)
		assert.Equal(t, 2, output.Chunks[0].PageNumber)
		assert.Equal(t, 0.78, output.Chunks[0].FusedScore)
	})

	t.Run("rejects ambiguous scope", func(t *testing.T) {
		server, err := NewServer(newTestPorts())
		require.NoError(t, err)

		input := RetrieveInput{Query: "revenue", DocumentID: "doc-1", CompanyID: "acme"}
		_, _, err = server.handleRetrieve(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one")
	})

	t.Run("returns error on retrieval failure", func(t *testing.T) {
		ports := newTestPorts()
		ports.Retrieval = &mockRetrievalService{err: errors.New("store offline")}

		server, err := NewServer(ports)
		require.NoError(t, err)

		input := RetrieveInput{Query: "revenue", DocumentID: "doc-1"}
		_, _, err = server.handleRetrieve(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "store offline")
	})
}

func TestServer_handleVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("returns verdict with citations", func(t *testing.T) {
		ports := newTestPorts()
		ports.Verification = &mockVerificationService{
			report: &driving.VerificationReport{
				Results: []domain.VerificationResult{
					{
						Verdict:     domain.VerdictVerified,
						Confidence:  92,
						Explanation: "the filing states the same figure",
						Citations: []domain.Citation{
							{DocumentID: "doc-1", ChunkID: "chunk-1", PageNumber: 2, Excerpt: "Revenue was $1.2 million."},
						},
					},
				},
				Summary: driving.VerificationSummary{TotalClaims: 1, Verified: 1},
			},
		}

		server, err := NewServer(ports)
		require.NoError(t, err)

		input := VerifyInput{Claim: "revenue was $1.2 million", CompanyID: "acme"}
		_, output, err := server.handleVerify(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "VERIFIED", output.Verdict)
		assert.Equal(t, 92, output.Confidence)
		require.Len(t, output.Citations, 1)
		assert.Equal(t, "chunk-1", output.Citations[0].ChunkID)
	})

	t.Run("rejects missing scope", func(t *testing.T) {
		server, err := NewServer(newTestPorts())
		require.NoError(t, err)

		input := VerifyInput{Claim: "revenue was up"}
		_, _, err = server.handleVerify(ctx, nil, input)

		require.Error(t, err)
	})

	t.Run("returns error on verification failure", func(t *testing.T) {
		ports := newTestPorts()
		ports.Verification = &mockVerificationService{err: errors.New("no completed document")}

		server, err := NewServer(ports)
		require.NoError(t, err)

		input := VerifyInput{Claim: "revenue was up", CompanyID: "acme"}
		_, _, err = server.handleVerify(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no completed document")
	})
}

func TestServer_handleIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("ingests content", func(t *testing.T) {
		ports := newTestPorts()
		ports.Ingest = &mockIngestService{
			result: &driving.IngestResult{DocumentID: "doc-1", Status: driving.IngestCreated},
		}

		server, err := NewServer(ports)
		require.NoError(t, err)

		input := IngestInput{
			CompanyID:    "acme",
			VersionLabel: "q3-2025",
			Content:      "Revenue was $1.2 million.",
		}
		_, output, err := server.handleIngest(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "doc-1", output.DocumentID)
		assert.Equal(t, "created", output.Status)
	})

	t.Run("errors when ingest not configured", func(t *testing.T) {
		server, err := NewServer(newTestPorts())
		require.NoError(t, err)

		input := IngestInput{CompanyID: "acme", VersionLabel: "q3-2025", Content: "text"}
		_, _, err = server.handleIngest(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})
}
