package domain

import "time"

// DocumentStatus tracks a document through its ingestion lifecycle.
type DocumentStatus string

const (
	// StatusProcessing is the initial state after the document row is created.
	StatusProcessing DocumentStatus = "processing"

	// StatusCompleted means chunking and indexing finished successfully.
	StatusCompleted DocumentStatus = "completed"

	// StatusFailed means an unrecoverable error occurred downstream.
	StatusFailed DocumentStatus = "failed"
)

// Terminal reports whether the status is final for this ingestion attempt.
// A fresh ingestion with new bytes starts a new Document instead of
// transitioning out of a terminal state.
func (s DocumentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether a transition from s to next is allowed.
// The only legal transitions are processing -> completed and
// processing -> failed.
func (s DocumentStatus) CanTransition(next DocumentStatus) bool {
	if s != StatusProcessing {
		return false
	}
	return next == StatusCompleted || next == StatusFailed
}

// Valid reports whether the status is one of the known lifecycle states.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Document represents a content-addressed source document.
// A document is never mutated in place; a new version of a report is a
// new Document row with a new VersionLabel under the same CompanyID.
type Document struct {
	// ID is the unique identifier, assigned once at first ingestion.
	ID string

	// CompanyID scopes the document to the company that filed it.
	CompanyID string

	// VersionLabel names the filing version (e.g. "q3-2025").
	VersionLabel string

	// ContentHash is the hex SHA-256 digest of the raw bytes.
	// Together with CompanyID it is the deduplication key: two ingests
	// with the same hash under the same company resolve to one document.
	ContentHash string

	// SourceURI is the original location (URL, file path), if known.
	SourceURI string

	// Status is the ingestion lifecycle state.
	Status DocumentStatus

	// PageCount is the number of pages extracted, zero if unknown.
	PageCount int

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document last changed state.
	UpdatedAt time.Time
}
