// Package plaintext extracts text from UTF-8 plain text documents.
// It is the fallback extractor: register it last.
package plaintext

import (
	"bytes"
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents. Form feeds act as page
// breaks; content without any reports a single page.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name identifies the extractor.
func (e *Extractor) Name() string {
	return "plaintext"
}

// CanHandle accepts valid UTF-8 without NUL bytes.
func (e *Extractor) CanHandle(data []byte) bool {
	return len(data) > 0 && utf8.Valid(data) && !bytes.ContainsRune(data, 0)
}

// Extract splits the content on form feeds into pages.
func (e *Extractor) Extract(_ context.Context, data []byte) (*driven.Extraction, error) {
	if !e.CanHandle(data) {
		return nil, fmt.Errorf("not valid utf-8 text: %w", domain.ErrContentFormat)
	}

	parts := bytes.Split(data, []byte{'\f'})
	extraction := &driven.Extraction{Pages: make([]driven.Page, 0, len(parts))}
	for i, part := range parts {
		extraction.Pages = append(extraction.Pages, driven.Page{
			Number: i + 1,
			Text:   string(part),
		})
	}

	return extraction, nil
}
