package domain

import "time"

// Claim is a factual statement extracted from spoken or video content.
// Claims are produced by an external extraction collaborator and are
// immutable once created; the core never owns or rewrites them.
type Claim struct {
	// Text is the exact claim statement.
	Text string

	// Category classifies the claim (revenue, growth, users, market,
	// projection, strategy, costs, other).
	Category string

	// NumericalValues holds the raw numeric strings mentioned in the
	// claim, as extracted ("25%", "$3.2 billion").
	NumericalValues []string

	// SourceTimestamp is the offset into the source recording where the
	// claim was made, zero if unknown.
	SourceTimestamp time.Duration
}
