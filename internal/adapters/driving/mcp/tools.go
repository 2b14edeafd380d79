package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driving"
)

// RetrieveInput is the input schema for the retrieve_chunks tool.
type RetrieveInput struct {
	Query      string `json:"query" jsonschema:"the query to rank evidence chunks against"`
	DocumentID string `json:"document_id,omitempty" jsonschema:"limit retrieval to one document (exactly one of document_id or company_id)"`
	CompanyID  string `json:"company_id,omitempty" jsonschema:"limit retrieval to the company's latest completed document"`
	TopK       int    `json:"top_k,omitempty" jsonschema:"maximum number of chunks to return (default 5)"`
}

// RetrieveOutput is the output schema for the retrieve_chunks tool.
type RetrieveOutput struct {
	Chunks []ChunkOutput `json:"chunks"`
	Count  int           `json:"count"`
}

// ChunkOutput represents a single ranked evidence chunk.
type ChunkOutput struct {
	ChunkID       string  `json:"chunk_id"`
	DocumentID    string  `json:"document_id"`
	Index         int     `json:"index"`
	PageNumber    int     `json:"page_number,omitempty"`
	SectionTitle  string  `json:"section_title,omitempty"`
	Text          string  `json:"text"`
	LexicalScore  float64 `json:"lexical_score"`
	SemanticScore float64 `json:"semantic_score"`
	FusedScore    float64 `json:"fused_score"`
}

// VerifyInput is the input schema for the verify_claim tool.
type VerifyInput struct {
	Claim      string `json:"claim" jsonschema:"the factual claim to verify"`
	DocumentID string `json:"document_id,omitempty" jsonschema:"verify against one document (exactly one of document_id or company_id)"`
	CompanyID  string `json:"company_id,omitempty" jsonschema:"verify against the company's latest completed document"`
}

// VerifyOutput is the output schema for the verify_claim tool.
type VerifyOutput struct {
	Verdict     string           `json:"verdict"`
	Confidence  int              `json:"confidence"`
	Explanation string           `json:"explanation,omitempty"`
	Error       string           `json:"error,omitempty"`
	Citations   []CitationOutput `json:"citations,omitempty"`
}

// CitationOutput points at the evidence backing a verdict.
type CitationOutput struct {
	DocumentID string `json:"document_id"`
	ChunkID    string `json:"chunk_id"`
	PageNumber int    `json:"page_number,omitempty"`
	Excerpt    string `json:"excerpt,omitempty"`
}

// IngestInput is the input schema for the ingest_document tool.
type IngestInput struct {
	CompanyID    string `json:"company_id" jsonschema:"the company the document belongs to"`
	VersionLabel string `json:"version_label" jsonschema:"the filing version label, e.g. q3-2025"`
	Content      string `json:"content,omitempty" jsonschema:"the raw document text (one of content or source_uri)"`
	SourceURI    string `json:"source_uri,omitempty" jsonschema:"a remote location to fetch the document from"`
}

// IngestOutput is the output schema for the ingest_document tool.
type IngestOutput struct {
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve_chunks",
		Description: "Retrieve the evidence chunks most relevant to a query",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "verify_claim",
		Description: "Verify a factual claim against indexed documents, with citations",
	}, s.handleVerify)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_document",
		Description: "Ingest a document into the content store",
	}, s.handleIngest)
}

// handleRetrieve handles the retrieve_chunks tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	scope := domain.RetrievalScope{
		DocumentID: input.DocumentID,
		CompanyID:  input.CompanyID,
	}
	if err := scope.Validate(); err != nil {
		return nil, RetrieveOutput{}, err
	}

	opts := driving.RetrievalOptions{TopK: input.TopK}
	results, err := s.ports.Retrieval.Retrieve(ctx, input.Query, scope, opts)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Chunks: make([]ChunkOutput, len(results)),
		Count:  len(results),
	}

	for i := range results {
		output.Chunks[i] = ChunkOutput{
			ChunkID:       results[i].ChunkID,
			DocumentID:    results[i].Chunk.DocumentID,
			Index:         results[i].Chunk.Index,
			PageNumber:    results[i].Chunk.PageNumber,
			SectionTitle:  results[i].Chunk.SectionTitle,
			Text:          results[i].Chunk.Text,
			LexicalScore:  results[i].LexicalScore,
			SemanticScore: results[i].SemanticScore,
			FusedScore:    results[i].FusedScore,
		}
	}

	return nil, output, nil
}

// handleVerify handles the verify_claim tool invocation.
func (s *Server) handleVerify(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VerifyInput,
) (*mcp.CallToolResult, VerifyOutput, error) {
	scope := domain.RetrievalScope{
		DocumentID: input.DocumentID,
		CompanyID:  input.CompanyID,
	}
	if err := scope.Validate(); err != nil {
		return nil, VerifyOutput{}, err
	}

	claim := domain.Claim{Text: input.Claim, Category: "other"}
	report, err := s.ports.Verification.VerifyClaims(ctx, []domain.Claim{claim}, scope)
	if err != nil {
		return nil, VerifyOutput{}, err
	}
	if len(report.Results) == 0 {
		return nil, VerifyOutput{}, errors.New("verification produced no result")
	}

	result := report.Results[0]
	output := VerifyOutput{
		Verdict:     string(result.Verdict),
		Confidence:  result.Confidence,
		Explanation: result.Explanation,
		Error:       result.Error,
		Citations:   make([]CitationOutput, len(result.Citations)),
	}

	for i, c := range result.Citations {
		output.Citations[i] = CitationOutput{
			DocumentID: c.DocumentID,
			ChunkID:    c.ChunkID,
			PageNumber: c.PageNumber,
			Excerpt:    c.Excerpt,
		}
	}

	return nil, output, nil
}

// handleIngest handles the ingest_document tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if s.ports.Ingest == nil {
		return nil, IngestOutput{}, errors.New("ingest service not configured")
	}

	req := driving.IngestRequest{
		CompanyID:    input.CompanyID,
		VersionLabel: input.VersionLabel,
		Bytes:        []byte(input.Content),
		SourceURI:    input.SourceURI,
	}

	result, err := s.ports.Ingest.Ingest(ctx, req)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		DocumentID: result.DocumentID,
		Status:     string(result.Status),
	}, nil
}
