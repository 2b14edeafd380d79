package reasoning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
)

func TestBuildJudgePrompt(t *testing.T) {
	prompt := BuildJudgePrompt("revenue grew 25%", []domain.Chunk{
		{ID: "c-1", PageNumber: 2, Text: "revenue grew 25% in Q3"},
		{ID: "c-2", PageNumber: 3, Text: "costs were flat"},
	})

	assert.Contains(t, prompt, "revenue grew 25%")
	assert.Contains(t, prompt, "[id=c-1 page=2]")
	assert.Contains(t, prompt, "[id=c-2 page=3]")
}

func TestParseJudgment(t *testing.T) {
	judgment, err := ParseJudgment(`{
		"support": "supported",
		"cited_chunk_ids": ["c-1"],
		"explanation": "the filing reports the same figure",
		"numeric_comparison": {"claimed_value": 25, "source_value": 24.8, "metric": "revenue growth"}
	}`)
	require.NoError(t, err)

	assert.Equal(t, domain.SupportSupported, judgment.Support)
	assert.Equal(t, []string{"c-1"}, judgment.CitedChunkIDs)
	require.NotNil(t, judgment.Numeric)
	assert.Equal(t, 25.0, judgment.Numeric.ClaimedValue)
	assert.Equal(t, 24.8, judgment.Numeric.SourceValue)
}

func TestParseJudgment_ProseWrappedJSON(t *testing.T) {
	judgment, err := ParseJudgment("Here is my assessment:\n{\"support\": \"partial\"}\nThanks!")
	require.NoError(t, err)
	assert.Equal(t, domain.SupportPartial, judgment.Support)
}

func TestParseJudgment_UnknownSupportDegradesToAbsent(t *testing.T) {
	judgment, err := ParseJudgment(`{"support": "maybe"}`)
	require.NoError(t, err)
	assert.Equal(t, domain.SupportAbsent, judgment.Support)
	assert.Nil(t, judgment.Numeric)
}

func TestParseJudgment_Malformed(t *testing.T) {
	_, err := ParseJudgment("I cannot answer that.")
	assert.Error(t, err)
}

func TestParseClaims(t *testing.T) {
	claims, err := ParseClaims(`{
		"claims": [
			{"text": "revenue grew 25%", "category": "growth", "numerical_values": ["25%"], "timestamp_seconds": 12.5},
			{"text": "", "category": "other"},
			{"text": "we run on vibes", "category": "nonsense"}
		]
	}`)
	require.NoError(t, err)
	require.Len(t, claims, 2)

	assert.Equal(t, "revenue grew 25%", claims[0].Text)
	assert.Equal(t, "growth", claims[0].Category)
	assert.Equal(t, []string{"25%"}, claims[0].NumericalValues)
	assert.Equal(t, 12500*time.Millisecond, claims[0].SourceTimestamp)

	// Unknown category folds into other.
	assert.Equal(t, "other", claims[1].Category)
}

func TestParseClaims_Empty(t *testing.T) {
	claims, err := ParseClaims(`{"claims": []}`)
	require.NoError(t, err)
	assert.Empty(t, claims)
}
