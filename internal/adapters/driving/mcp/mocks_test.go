package mcp

import (
	"context"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driving"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	results []domain.RetrievalResult
	err     error
}

func (m *mockRetrievalService) Retrieve(
	_ context.Context,
	_ string,
	_ domain.RetrievalScope,
	_ driving.RetrievalOptions,
) ([]domain.RetrievalResult, error) {
	return m.results, m.err
}

// mockVerificationService is a mock implementation of driving.VerificationService.
type mockVerificationService struct {
	result *domain.VerificationResult
	report *driving.VerificationReport
	err    error
}

func (m *mockVerificationService) Verify(
	_ context.Context,
	_ domain.Claim,
	_ []domain.RetrievalResult,
) (*domain.VerificationResult, error) {
	return m.result, m.err
}

func (m *mockVerificationService) VerifyClaims(
	_ context.Context,
	_ []domain.Claim,
	_ domain.RetrievalScope,
) (*driving.VerificationReport, error) {
	return m.report, m.err
}

func (m *mockVerificationService) VerifyTranscript(
	_ context.Context,
	_ string,
	_ domain.RetrievalScope,
) (*driving.VerificationReport, error) {
	return m.report, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	result *driving.IngestResult
	err    error
}

func (m *mockIngestService) Ingest(
	_ context.Context,
	_ driving.IngestRequest,
) (*driving.IngestResult, error) {
	return m.result, m.err
}
