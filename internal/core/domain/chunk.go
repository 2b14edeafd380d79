package domain

// BoundingBox locates a chunk on its page in PDF user-space units.
type BoundingBox struct {
	X0 float64
	Y0 float64
	X1 float64
	Y1 float64
}

// Chunk represents a bounded, ordered span of normalised text extracted
// from a document. Chunks are owned exclusively by their Document.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Index is the zero-based position within the document, assigned
	// deterministically by the chunker. Re-chunking identical bytes with
	// the same configuration reproduces the same ordered sequence.
	Index int

	// PageNumber is the 1-based page the chunk starts on, zero if unknown.
	PageNumber int

	// SectionTitle is the nearest preceding heading, if detected.
	SectionTitle string

	// Text is the normalised chunk text used for scoring and display.
	Text string

	// TextRaw is the pre-normalisation text, kept for excerpt fidelity.
	TextRaw string

	// Embedding is the optional vector representation for semantic
	// scoring. Nil when no embedding collaborator was available.
	Embedding []float32

	// TokenCount is the token length under the chunker's counter.
	TokenCount int

	// BBox optionally locates the chunk on its page.
	BBox *BoundingBox
}
