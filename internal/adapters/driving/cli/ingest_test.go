package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [file]", ingestCmd.Use)
}

func TestIngestCmd_RequiresCompany(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("ingest", "somefile.txt", "--version-label", "q3-2025")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "company")
}

func TestIngestCmd_IngestsFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("Revenue was $1.2 million in the third quarter."), 0600))

	out, err := executeCommand("ingest", path, "--company", "acme", "--version-label", "q3-2025")

	require.NoError(t, err)
	assert.Contains(t, out, "Ingested document")
}

func TestIngestCmd_ReportsExisting(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("Revenue was $1.2 million."), 0600))

	_, err := executeCommand("ingest", path, "--company", "acme", "--version-label", "q3-2025")
	require.NoError(t, err)

	out, err := executeCommand("ingest", path, "--company", "acme", "--version-label", "q3-final")

	require.NoError(t, err)
	assert.Contains(t, out, "Already ingested")
}

func TestIngestCmd_RejectsMissingInput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("ingest", "--company", "acme", "--version-label", "q3-2025", "--uri", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "file path or --uri")
}
