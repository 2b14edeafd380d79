package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for ClaimLens resources.
const uriScheme = "claimlens://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for a company's documents.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "companies/{companyId}/documents",
		Name:        "company-documents",
		Description: "Ingested documents for a specific company",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for a document's chunks.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}/chunks",
		Name:        "document-chunks",
		Description: "Indexed chunks of a specific document",
		MIMEType:    "application/json",
	}, s.handleChunksResource)
}

// handleDocumentsResource returns the documents for a specific company.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Documents == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	companyID := extractCompanyID(req.Params.URI)
	if companyID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Documents.ListDocuments(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	type docInfo struct {
		ID           string `json:"id"`
		VersionLabel string `json:"version_label"`
		Status       string `json:"status"`
		PageCount    int    `json:"page_count,omitempty"`
	}

	infos := make([]docInfo, len(docs))
	for i := range docs {
		infos[i] = docInfo{
			ID:           docs[i].ID,
			VersionLabel: docs[i].VersionLabel,
			Status:       string(docs[i].Status),
			PageCount:    docs[i].PageCount,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleChunksResource returns the chunks of a specific document.
func (s *Server) handleChunksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Documents == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	chunks, err := s.ports.Documents.GetChunks(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("getting chunks: %w", err)
	}

	type chunkInfo struct {
		ID           string `json:"id"`
		Index        int    `json:"index"`
		PageNumber   int    `json:"page_number,omitempty"`
		SectionTitle string `json:"section_title,omitempty"`
		Text         string `json:"text"`
	}

	infos := make([]chunkInfo, len(chunks))
	for i := range chunks {
		infos[i] = chunkInfo{
			ID:           chunks[i].ID,
			Index:        chunks[i].Index,
			PageNumber:   chunks[i].PageNumber,
			SectionTitle: chunks[i].SectionTitle,
			Text:         chunks[i].Text,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling chunks: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCompanyID extracts the company ID from a URI like
// claimlens://companies/{companyId}/documents.
func extractCompanyID(uri string) string {
	const prefix = uriScheme + "companies/"
	const suffix = "/documents"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}

// extractDocumentID extracts the document ID from a URI like
// claimlens://documents/{documentId}/chunks.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"
	const suffix = "/chunks"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
