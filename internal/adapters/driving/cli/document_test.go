package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCmd_Use(t *testing.T) {
	assert.Equal(t, "document", documentCmd.Use)
}

func TestDocumentListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("document", "list", "nobody")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents found")
}

func TestDocumentListCmd_ListsDocuments(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docID := ingestTestDocument(t, "acme", "q3-2025", "Revenue was $1.2 million.")

	out, err := executeCommand("document", "list", "acme")

	require.NoError(t, err)
	assert.Contains(t, out, docID)
	assert.Contains(t, out, "q3-2025")
	assert.Contains(t, out, "Total: 1 documents")
}

func TestDocumentGetCmd_ShowsDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docID := ingestTestDocument(t, "acme", "q3-2025", "Revenue was $1.2 million.")

	out, err := executeCommand("document", "get", docID)

	require.NoError(t, err)
	assert.Contains(t, out, docID)
	assert.Contains(t, out, "Status:   completed")
	assert.Contains(t, out, "Hash:")
}

func TestDocumentGetCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("document", "get", "no-such-doc")

	require.Error(t, err)
}

func TestDocumentChunksCmd_ListsChunks(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docID := ingestTestDocument(t, "acme", "q3-2025", "Revenue was $1.2 million.")

	out, err := executeCommand("document", "chunks", docID)

	require.NoError(t, err)
	assert.Contains(t, out, "Revenue was $1.2 million.")
	assert.Contains(t, out, "Total: 1 chunks")
}

func TestDocumentDeleteCmd_Deletes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docID := ingestTestDocument(t, "acme", "q3-2025", "Revenue was $1.2 million.")

	out, err := executeCommand("document", "delete", docID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted document")

	_, err = executeCommand("document", "get", docID)
	assert.Error(t, err)
}
