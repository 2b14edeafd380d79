// Package pdf extracts per-page text from PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

var pdfMagic = []byte("%PDF-")

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name identifies the extractor.
func (e *Extractor) Name() string {
	return "pdf"
}

// CanHandle sniffs for the PDF magic bytes.
func (e *Extractor) CanHandle(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// Extract pulls the text of every page, preserving page numbers.
// Pages that decode to no text are kept as empty entries so numbering
// stays aligned with the source document.
func (e *Extractor) Extract(_ context.Context, data []byte) (result *driven.Extraction, err error) {
	// The underlying parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("pdf parse panic: %v: %w", r, domain.ErrContentFormat)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %v: %w", err, domain.ErrContentFormat)
	}

	total := reader.NumPage()
	extraction := &driven.Extraction{Pages: make([]driven.Page, 0, total)}
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			extraction.Pages = append(extraction.Pages, driven.Page{Number: i})
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %v: %w", i, err, domain.ErrContentFormat)
		}
		extraction.Pages = append(extraction.Pages, driven.Page{Number: i, Text: text})
	}

	return extraction, nil
}
