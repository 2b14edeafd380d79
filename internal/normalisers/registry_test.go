package normalisers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/normalisers/pdf"
	"github.com/verity-labs/claimlens-cli/internal/normalisers/plaintext"
)

func TestRegistry_ExtractorFor(t *testing.T) {
	registry := NewRegistry(pdf.New(), plaintext.New())

	t.Run("pdf content picks the pdf extractor", func(t *testing.T) {
		extractor, err := registry.ExtractorFor([]byte("%PDF-1.7\n"))
		require.NoError(t, err)
		assert.Equal(t, "pdf", extractor.Name())
	})

	t.Run("text content falls through to plaintext", func(t *testing.T) {
		extractor, err := registry.ExtractorFor([]byte("quarterly transcript"))
		require.NoError(t, err)
		assert.Equal(t, "plaintext", extractor.Name())
	})

	t.Run("unrecognised content fails", func(t *testing.T) {
		extractor, err := registry.ExtractorFor([]byte{0x00, 0x01, 0x02})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrContentFormat)
		assert.Nil(t, extractor)
	})

	t.Run("empty registry rejects everything", func(t *testing.T) {
		_, err := NewRegistry().ExtractorFor([]byte("anything"))
		assert.ErrorIs(t, err, domain.ErrContentFormat)
	})
}
