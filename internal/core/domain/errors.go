package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrContentFormat indicates the ingested bytes are not a
	// recognisable text or PDF structure. Unrecoverable; ingestion
	// fails fast without retrying.
	ErrContentFormat = errors.New("unrecognised content format")

	// ErrStorageWrite indicates the durability layer rejected a write.
	// Retryable with bounded backoff; ingestion is not complete until
	// the store acknowledges.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrCollaboratorTimeout indicates an external reasoning or
	// embedding service did not respond within its bound.
	ErrCollaboratorTimeout = errors.New("collaborator timed out")

	// ErrCitationIntegrity indicates a verdict referenced a chunk
	// outside its evidence set. This is a programming-invariant
	// violation: it must never reach a caller, and is converted to a
	// fail-safe NOT_FOUND verdict instead.
	ErrCitationIntegrity = errors.New("citation outside evidence set")

	// ErrInvalidTransition indicates a document status change that the
	// lifecycle state machine forbids.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Retrieval degrades to lexical-only scoring.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrReasoningUnavailable indicates the reasoning service is not
	// configured. Verification degrades to NOT_FOUND with an error
	// annotation.
	ErrReasoningUnavailable = errors.New("reasoning service unavailable")
)
