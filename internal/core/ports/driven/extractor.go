package driven

import "context"

// Page is one page of extracted text. Numbers are 1-based and
// mirror the source document's page order.
type Page struct {
	Number int
	Text   string
}

// Extraction is the raw text content of a document, split by page.
// Formats without a native page concept report a single page.
type Extraction struct {
	Pages []Page
}

// Extractor converts raw document bytes into per-page text.
// Implementations are registered with the extractor registry at
// startup and selected by content sniffing.
type Extractor interface {
	// Name identifies the extractor in logs and errors.
	Name() string

	// CanHandle reports whether the extractor recognises the content.
	CanHandle(data []byte) bool

	// Extract pulls the text content out of the raw bytes.
	// Returns domain.ErrContentFormat when the data is malformed.
	Extract(ctx context.Context, data []byte) (*Extraction, error)
}
