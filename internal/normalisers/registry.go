package normalisers

import (
	"fmt"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driven"
)

// Registry selects an extractor for raw document content.
// Extractors are tried in registration order; the first one whose
// CanHandle accepts the content wins.
type Registry struct {
	extractors []driven.Extractor
}

// NewRegistry creates a registry with the given extractors.
// Order matters: register format-specific extractors before fallbacks.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	return &Registry{extractors: extractors}
}

// ExtractorFor returns the first extractor that recognises the content.
// Returns domain.ErrContentFormat when no extractor accepts it.
func (r *Registry) ExtractorFor(data []byte) (driven.Extractor, error) {
	for _, e := range r.extractors {
		if e.CanHandle(data) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no extractor for content: %w", domain.ErrContentFormat)
}
