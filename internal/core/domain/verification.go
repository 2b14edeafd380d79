package domain

import "time"

// Verdict is the categorical outcome of comparing a claim against
// evidence. The taxonomy is exhaustive and mutually exclusive.
type Verdict string

const (
	// VerdictVerified means the claim is supported, numerically
	// consistent within tolerance, by at least one evidence chunk.
	VerdictVerified Verdict = "VERIFIED"

	// VerdictContradicted means an evidence chunk states a materially
	// different value or fact for the same subject.
	VerdictContradicted Verdict = "CONTRADICTED"

	// VerdictPartiallyVerified means direction or category matches but
	// magnitude differs beyond tolerance, or only partial support exists.
	VerdictPartiallyVerified Verdict = "PARTIALLY_VERIFIED"

	// VerdictNotFound means no evidence chunk addresses the claim's
	// subject at all.
	VerdictNotFound Verdict = "NOT_FOUND"
)

// Valid reports whether the verdict is part of the taxonomy.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictVerified, VerdictContradicted, VerdictPartiallyVerified, VerdictNotFound:
		return true
	}
	return false
}

// Citation points at the evidence chunk backing a verdict.
// Every citation must reference a chunk from the evidence set the
// verification engine was given; citations are never fabricated.
type Citation struct {
	// DocumentID is the document the cited chunk belongs to.
	DocumentID string

	// ChunkID is the cited chunk.
	ChunkID string

	// PageNumber is the page the chunk starts on, zero if unknown.
	PageNumber int

	// Excerpt is a short span of the cited chunk's text.
	Excerpt string
}

// VerificationResult is the structured outcome for one claim. It is
// produced once per (claim, corpus) pair and never mutated afterwards;
// completed results are only appended to the audit log.
type VerificationResult struct {
	// Claim is the statement that was verified.
	Claim Claim

	// Verdict is the categorical outcome.
	Verdict Verdict

	// Confidence is 0-100, monotone in the top fused retrieval score of
	// the cited evidence and in the strength of numeric agreement.
	Confidence int

	// Citations lists the evidence chunks backing the verdict.
	// Empty for NOT_FOUND.
	Citations []Citation

	// Explanation is the natural-language justification from the
	// reasoning collaborator.
	Explanation string

	// Error annotates results degraded by a collaborator failure.
	// Empty on the normal path.
	Error string

	// VerifiedAt is when the verification completed.
	VerifiedAt time.Time
}

// SupportLevel is the reasoning collaborator's raw assessment of how
// the evidence relates to the claim, before the engine applies the
// numeric tolerance policy.
type SupportLevel string

const (
	// SupportSupported means the evidence affirms the claim.
	SupportSupported SupportLevel = "supported"

	// SupportContradicted means the evidence states the opposite.
	SupportContradicted SupportLevel = "contradicted"

	// SupportPartial means some aspects are affirmed, others not.
	SupportPartial SupportLevel = "partial"

	// SupportAbsent means the evidence does not address the claim.
	SupportAbsent SupportLevel = "absent"
)

// NumericComparison is a numeric pairing extracted by the reasoning
// collaborator: the value the claim asserts and the value the evidence
// states for the same metric.
type NumericComparison struct {
	// ClaimedValue is the number asserted by the claim.
	ClaimedValue float64

	// SourceValue is the number stated by the cited evidence.
	SourceValue float64

	// Metric names the compared quantity, if the collaborator named it.
	Metric string
}

// Judgment is the structured output of the reasoning collaborator for
// one claim. The verification engine maps it into the verdict taxonomy;
// the collaborator never decides the final verdict on its own.
type Judgment struct {
	// Support is the collaborator's qualitative assessment.
	Support SupportLevel

	// CitedChunkIDs are the evidence chunks the collaborator relied on.
	// IDs outside the evidence set are discarded by the engine.
	CitedChunkIDs []string

	// Numeric is the extracted numeric comparison, when the claim and
	// evidence both carry a number for the same metric.
	Numeric *NumericComparison

	// Explanation is the collaborator's reasoning in prose.
	Explanation string
}
