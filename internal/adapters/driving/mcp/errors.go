// Package mcp provides an MCP (Model Context Protocol) server adapter
// for ClaimLens. It lets AI assistants retrieve evidence from indexed
// filings and verify claims against them.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

// ErrMissingVerificationService is returned when the verification service is not provided.
var ErrMissingVerificationService = errors.New("mcp: verification service is required")
