package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCmd_Use(t *testing.T) {
	assert.Equal(t, "verify [claim]", verifyCmd.Use)
}

func TestVerifyCmd_RequiresClaimOrTranscript(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("verify", "--document", "some-doc", "--company", "", "--transcript", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "claim or --transcript")
}

func TestVerifyCmd_RequiresScope(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("verify", "revenue was up", "--document", "", "--company", "", "--transcript", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")
}

func TestVerifyCmd_VerifiesClaim(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docID := ingestTestDocument(t, "acme", "q3-2025",
		"Revenue was $1.2 million in the third quarter, up 25% year over year.")

	// No reasoning collaborator is wired in tests, so the engine
	// degrades to NOT_FOUND but still surfaces the numeric agreement.
	out, err := executeCommand("verify", "revenue was $1.2 million, up 25%",
		"--document", docID, "--company", "", "--transcript", "")

	require.NoError(t, err)
	assert.Contains(t, out, "Verdict:    NOT_FOUND")
	assert.Contains(t, out, "claim numbers match the evidence")
	assert.Contains(t, out, "Summary: 1 claims")
}

func TestVerifyCmd_TranscriptWithoutExtractor(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docID := ingestTestDocument(t, "acme", "q3-2025", "Revenue was $1.2 million.")

	path := filepath.Join(t.TempDir(), "call.txt")
	require.NoError(t, os.WriteFile(path, []byte("We grew revenue to $1.2 million."), 0600))

	// No extraction collaborator is wired in tests.
	_, err := executeCommand("verify", "--document", docID, "--company", "", "--transcript", path)

	require.Error(t, err)
}

func TestVerifyCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	docID := ingestTestDocument(t, "acme", "q3-2025", "Revenue was $1.2 million.")

	out, err := executeCommand("verify", "revenue was $1.2 million",
		"--document", docID, "--company", "", "--transcript", "", "--json")
	defer func() { verifyJSON = false }()

	require.NoError(t, err)
	assert.Contains(t, out, `"summary"`)
	assert.Contains(t, out, `"total_claims": 1`)
}
