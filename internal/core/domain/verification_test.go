package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdict_Valid(t *testing.T) {
	for _, v := range []Verdict{
		VerdictVerified, VerdictContradicted, VerdictPartiallyVerified, VerdictNotFound,
	} {
		assert.True(t, v.Valid(), "verdict %s should be valid", v)
	}

	assert.False(t, Verdict("MAYBE").Valid())
	assert.False(t, Verdict("").Valid())
}

func TestCitation_Fields(t *testing.T) {
	c := Citation{
		DocumentID: "doc-1",
		ChunkID:    "chunk-4",
		PageNumber: 12,
		Excerpt:    "revenue increased 24.8% year over year",
	}

	assert.Equal(t, "doc-1", c.DocumentID)
	assert.Equal(t, "chunk-4", c.ChunkID)
	assert.Equal(t, 12, c.PageNumber)
	assert.NotEmpty(t, c.Excerpt)
}
