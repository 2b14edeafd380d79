package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verity-labs/claimlens-cli/internal/adapters/driven/storage/memory"
	"github.com/verity-labs/claimlens-cli/internal/chunker"
	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driving"
	"github.com/verity-labs/claimlens-cli/internal/core/services"
	"github.com/verity-labs/claimlens-cli/internal/normalisers"
	"github.com/verity-labs/claimlens-cli/internal/normalisers/plaintext"
)

// setupTestServices wires the commands to in-memory services.
// The returned cleanup restores the nil state so other tests see an
// unconfigured CLI.
func setupTestServices() func() {
	store := memory.NewDocumentStore()
	registry := normalisers.NewRegistry(plaintext.New())
	chk := chunker.New()

	retrieval := services.NewRetrievalService(store, nil, domain.DefaultFusionWeights())

	docStore = store
	ingestService = services.NewIngestService(store, registry, chk, nil, nil)
	retrievalService = retrieval
	verificationService = services.NewVerificationService(retrieval, nil, nil, memory.NewAuditLog())

	return func() {
		docStore = nil
		ingestService = nil
		retrievalService = nil
		verificationService = nil
	}
}

// executeCommand runs the root command with args and captures output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// ingestTestDocument pushes content through the wired ingest service
// and returns the document ID.
func ingestTestDocument(t *testing.T, companyID, versionLabel, content string) string {
	t.Helper()

	result, err := ingestService.Ingest(context.Background(), driving.IngestRequest{
		CompanyID:    companyID,
		VersionLabel: versionLabel,
		Bytes:        []byte(content),
	})
	require.NoError(t, err)
	require.Equal(t, driving.IngestCreated, result.Status)
	return result.DocumentID
}
