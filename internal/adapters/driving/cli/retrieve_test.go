package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrieveCmd_Use(t *testing.T) {
	assert.Equal(t, "retrieve [query]", retrieveCmd.Use)
}

func TestRetrieveCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := executeCommand("retrieve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestRetrieveCmd_RequiresScope(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("retrieve", "revenue", "--document", "", "--company", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")
}

func TestRetrieveCmd_ReturnsRankedChunks(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docID := ingestTestDocument(t, "acme", "q3-2025",
		"Revenue grew strongly this quarter.\n\nHeadcount stayed flat.")

	out, err := executeCommand("retrieve", "revenue", "--document", docID, "--company", "")

	require.NoError(t, err)
	assert.Contains(t, out, "Results:")
	assert.Contains(t, out, "Revenue grew strongly")
}

func TestRetrieveCmd_CompanyScope(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ingestTestDocument(t, "acme", "q3-2025", "Operating margin improved to 21%.")

	out, err := executeCommand("retrieve", "operating margin", "--document", "", "--company", "acme")

	require.NoError(t, err)
	assert.Contains(t, out, "Operating margin improved")
}

func TestRetrieveCmd_TopKFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	// Form feeds force page boundaries, so each statement is its own chunk.
	docID := ingestTestDocument(t, "acme", "q3-2025",
		"Revenue rose.\fRevenue fell.\fRevenue stabilised.")

	out, err := executeCommand("retrieve", "revenue", "--document", docID, "--company", "", "--top-k", "1")
	defer func() { retrieveTopK = 5 }()

	require.NoError(t, err)
	assert.Contains(t, out, "[1]")
	assert.NotContains(t, out, "[2]")
}

func TestRetrieveCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docID := ingestTestDocument(t, "acme", "q3-2025", "Revenue grew strongly.")

	out, err := executeCommand("retrieve", "revenue", "--document", docID, "--company", "", "--json")
	defer func() { retrieveJSON = false }()

	require.NoError(t, err)
	assert.Contains(t, out, `"fused_score"`)
	assert.Contains(t, out, `"chunk_id"`)
}
