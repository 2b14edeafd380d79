package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driven"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driving"
	"github.com/verity-labs/claimlens-cli/internal/logger"
	"github.com/verity-labs/claimlens-cli/internal/normalisers"
)

// Ensure VerificationService implements the interface.
var _ driving.VerificationService = (*VerificationService)(nil)

// DefaultNumericTolerance is the relative tolerance under which two
// numbers count as the same figure.
const DefaultNumericTolerance = 0.05

// DefaultReasoningTimeout bounds one reasoning collaborator call.
const DefaultReasoningTimeout = 30 * time.Second

// maxExcerptLen caps citation excerpt length.
const maxExcerptLen = 300

// VerificationService maps claims plus retrieved evidence to verdicts
// with citations. The reasoning collaborator supplies raw judgments;
// this engine owns the tolerance policy and the final verdict.
type VerificationService struct {
	retrieval driving.RetrievalService
	reasoning driven.ReasoningService
	extractor driven.ClaimExtractor
	audit     driven.AuditLog

	tolerance float64
	timeout   time.Duration
}

// NewVerificationService creates a new verification service.
// The reasoning, extractor, and audit parameters are optional (can be
// nil); without reasoning, verdicts rest on numeric alignment alone.
func NewVerificationService(
	retrieval driving.RetrievalService,
	reasoning driven.ReasoningService,
	extractor driven.ClaimExtractor,
	audit driven.AuditLog,
) *VerificationService {
	return &VerificationService{
		retrieval: retrieval,
		reasoning: reasoning,
		extractor: extractor,
		audit:     audit,
		tolerance: DefaultNumericTolerance,
		timeout:   DefaultReasoningTimeout,
	}
}

// SetNumericTolerance overrides the relative numeric tolerance.
func (s *VerificationService) SetNumericTolerance(tolerance float64) {
	if tolerance > 0 {
		s.tolerance = tolerance
	}
}

// SetReasoningTimeout overrides the per-call reasoning deadline.
func (s *VerificationService) SetReasoningTimeout(timeout time.Duration) {
	if timeout > 0 {
		s.timeout = timeout
	}
}

// Verify produces a verdict for one claim from already-retrieved
// evidence.
func (s *VerificationService) Verify(
	ctx context.Context, claim domain.Claim, evidence []domain.RetrievalResult,
) (*domain.VerificationResult, error) {
	result := s.verify(ctx, claim, evidence)
	s.record(ctx, result)
	return &result, nil
}

func (s *VerificationService) verify(
	ctx context.Context, claim domain.Claim, evidence []domain.RetrievalResult,
) domain.VerificationResult {
	result := domain.VerificationResult{
		Claim:      claim,
		Verdict:    domain.VerdictNotFound,
		VerifiedAt: time.Now().UTC(),
	}

	if len(evidence) == 0 {
		result.Explanation = "no evidence chunks in scope address this claim"
		result.Confidence = s.confidence(result.Verdict, 0, false)
		return result
	}

	alignment := s.alignClaim(claim, evidence)

	judgment, err := s.judge(ctx, claim, evidence)
	if err != nil {
		result.Error = err.Error()
		result.Explanation = "reasoning collaborator unavailable"
		if alignment.claimedCount > 0 && alignment.matched {
			// Without a judgment the engine will not assert support,
			// but a clean numeric match is still worth surfacing.
			result.Explanation = "reasoning collaborator unavailable; claim numbers match the evidence"
		}
		result.Confidence = s.confidence(result.Verdict, topFused(evidence), false)
		return result
	}

	result.Verdict = s.decide(judgment, alignment)
	result.Explanation = judgment.Explanation

	citations, err := s.cite(judgment, evidence, result.Verdict)
	if err != nil {
		// Fail safe: a verdict whose citations cannot be pinned to the
		// evidence set is worth less than no verdict at all.
		logger.Warn("Citation integrity failure: %v", err)
		return domain.VerificationResult{
			Claim:       claim,
			Verdict:     domain.VerdictNotFound,
			Explanation: "citations could not be verified against the evidence set",
			Error:       err.Error(),
			Confidence:  s.confidence(domain.VerdictNotFound, 0, false),
			VerifiedAt:  result.VerifiedAt,
		}
	}
	result.Citations = citations

	numericAgreement := alignment.claimedCount > 0 && alignment.matched
	result.Confidence = s.confidence(result.Verdict, topFused(evidence), numericAgreement)
	return result
}

// alignClaim extracts the claim's numbers and compares them against
// every number in the evidence texts.
func (s *VerificationService) alignClaim(claim domain.Claim, evidence []domain.RetrievalResult) numericAlignment {
	claimed := claimNumbers(claim)

	var source []float64
	for _, ev := range evidence {
		source = append(source, extractNumbers(ev.Chunk.Text)...)
	}

	return alignNumbers(claimed, source, s.tolerance)
}

// claimNumbers prefers the extractor's captured values, falling back
// to scanning the claim text.
func claimNumbers(claim domain.Claim) []float64 {
	var claimed []float64
	for _, raw := range claim.NumericalValues {
		claimed = append(claimed, extractNumbers(normalisers.NormalizeText(raw))...)
	}
	if len(claimed) == 0 {
		claimed = extractNumbers(normalisers.NormalizeText(claim.Text))
	}
	return claimed
}

// judge calls the reasoning collaborator under a bounded deadline.
func (s *VerificationService) judge(
	ctx context.Context, claim domain.Claim, evidence []domain.RetrievalResult,
) (*domain.Judgment, error) {
	if s.reasoning == nil {
		return nil, domain.ErrReasoningUnavailable
	}

	chunks := make([]domain.Chunk, len(evidence))
	for i, ev := range evidence {
		chunks[i] = ev.Chunk
	}

	judgeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	judgment, err := s.reasoning.Judge(judgeCtx, claim.Text, chunks)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: reasoning call exceeded %s", domain.ErrCollaboratorTimeout, s.timeout)
		}
		return nil, fmt.Errorf("judging claim: %w", err)
	}
	if judgment == nil {
		return nil, fmt.Errorf("judging claim: empty judgment")
	}
	return judgment, nil
}

// decide maps a judgment to the final verdict. Numeric evidence wins
// over the collaborator's qualitative support level: a claim whose
// numbers agree with the source within tolerance is VERIFIED even when
// the collaborator hedges, so an exact match can never come out
// CONTRADICTED.
func (s *VerificationService) decide(judgment *domain.Judgment, alignment numericAlignment) domain.Verdict {
	if judgment.Numeric != nil {
		claimed, source := judgment.Numeric.ClaimedValue, judgment.Numeric.SourceValue
		switch {
		case withinTolerance(claimed, source, s.tolerance):
			return domain.VerdictVerified
		case claimed != 0 && source != 0 && (claimed < 0) != (source < 0):
			return domain.VerdictContradicted
		default:
			return domain.VerdictPartiallyVerified
		}
	}

	if alignment.claimedCount > 0 && alignment.matched {
		return domain.VerdictVerified
	}

	switch judgment.Support {
	case domain.SupportSupported:
		if alignment.claimedCount > 0 && !alignment.matched {
			// The collaborator agrees with the prose but the numbers
			// drift beyond tolerance.
			if alignment.signConflict {
				return domain.VerdictContradicted
			}
			return domain.VerdictPartiallyVerified
		}
		return domain.VerdictVerified
	case domain.SupportContradicted:
		return domain.VerdictContradicted
	case domain.SupportPartial:
		return domain.VerdictPartiallyVerified
	default:
		return domain.VerdictNotFound
	}
}

// cite builds citations from the judgment's cited chunk IDs, filtered
// to the evidence set. A non-NOT_FOUND verdict with no usable citation
// falls back to the top-ranked evidence chunk; if even that fails the
// integrity check, the caller downgrades the verdict.
func (s *VerificationService) cite(
	judgment *domain.Judgment, evidence []domain.RetrievalResult, verdict domain.Verdict,
) ([]domain.Citation, error) {
	if verdict == domain.VerdictNotFound {
		return nil, nil
	}

	byID := make(map[string]domain.Chunk, len(evidence))
	for _, ev := range evidence {
		byID[ev.ChunkID] = ev.Chunk
	}

	var citations []domain.Citation
	seen := make(map[string]bool)
	for _, id := range judgment.CitedChunkIDs {
		chunk, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		citations = append(citations, citationFor(chunk))
	}

	if len(citations) == 0 {
		citations = append(citations, citationFor(evidence[0].Chunk))
	}

	for _, citation := range citations {
		if _, ok := byID[citation.ChunkID]; !ok {
			return nil, fmt.Errorf("citation %s outside evidence set: %w",
				citation.ChunkID, domain.ErrCitationIntegrity)
		}
	}
	return citations, nil
}

func citationFor(chunk domain.Chunk) domain.Citation {
	excerpt := chunk.Text
	if len(excerpt) > maxExcerptLen {
		// Back up to a rune boundary so the cut never splits a
		// multi-byte character.
		cut := maxExcerptLen
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = strings.TrimSpace(excerpt[:cut]) + "..."
	}
	return domain.Citation{
		DocumentID: chunk.DocumentID,
		ChunkID:    chunk.ID,
		PageNumber: chunk.PageNumber,
		Excerpt:    excerpt,
	}
}

// confidence scores a result from the verdict's base, the strength of
// the top evidence, and numeric agreement. Capped at 100.
func (s *VerificationService) confidence(verdict domain.Verdict, topScore float64, numericAgreement bool) int {
	base := 10
	switch verdict {
	case domain.VerdictVerified:
		base = 60
	case domain.VerdictContradicted:
		base = 55
	case domain.VerdictPartiallyVerified:
		base = 40
	}

	score := base + int(30*topScore)
	if numericAgreement {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

func topFused(evidence []domain.RetrievalResult) float64 {
	top := 0.0
	for _, ev := range evidence {
		if ev.FusedScore > top {
			top = ev.FusedScore
		}
	}
	return top
}

// record appends the result to the audit log. Fire-and-forget: audit
// failure never fails a verification.
func (s *VerificationService) record(ctx context.Context, result domain.VerificationResult) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, result); err != nil {
		logger.Warn("Audit record failed: %v", err)
	}
}

// VerifyClaims retrieves evidence for each claim within the scope and
// verifies all of them. One claim's failure never drops it from the
// report; it appears as NOT_FOUND with an error annotation.
func (s *VerificationService) VerifyClaims(
	ctx context.Context, claims []domain.Claim, scope domain.RetrievalScope,
) (*driving.VerificationReport, error) {
	if err := scope.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	logger.Section("Claim Verification")
	logger.Debug("Verifying %d claims", len(claims))

	report := &driving.VerificationReport{
		Results: make([]domain.VerificationResult, 0, len(claims)),
	}

	for _, claim := range claims {
		result := s.verifyInScope(ctx, claim, scope)
		s.record(ctx, result)
		report.Results = append(report.Results, result)
	}

	report.Summary = summarise(report.Results)
	return report, nil
}

func (s *VerificationService) verifyInScope(
	ctx context.Context, claim domain.Claim, scope domain.RetrievalScope,
) domain.VerificationResult {
	evidence, err := s.retrieval.Retrieve(ctx, claim.Text, scope, driving.RetrievalOptions{})
	if err != nil {
		return domain.VerificationResult{
			Claim:       claim,
			Verdict:     domain.VerdictNotFound,
			Explanation: "evidence retrieval failed",
			Error:       err.Error(),
			Confidence:  s.confidence(domain.VerdictNotFound, 0, false),
			VerifiedAt:  time.Now().UTC(),
		}
	}
	return s.verify(ctx, claim, evidence)
}

// VerifyTranscript extracts claims from raw transcript text, then
// verifies each against the scope's corpus.
func (s *VerificationService) VerifyTranscript(
	ctx context.Context, transcript string, scope domain.RetrievalScope,
) (*driving.VerificationReport, error) {
	if s.extractor == nil {
		return nil, fmt.Errorf("%w: no claim extractor configured", domain.ErrReasoningUnavailable)
	}
	if strings.TrimSpace(transcript) == "" {
		return &driving.VerificationReport{Results: []domain.VerificationResult{}}, nil
	}

	claims, err := s.extractor.Extract(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("extracting claims: %w", err)
	}
	logger.Debug("Extracted %d claims from transcript", len(claims))

	return s.VerifyClaims(ctx, claims, scope)
}

func summarise(results []domain.VerificationResult) driving.VerificationSummary {
	summary := driving.VerificationSummary{TotalClaims: len(results)}
	for _, result := range results {
		switch result.Verdict {
		case domain.VerdictVerified:
			summary.Verified++
		case domain.VerdictContradicted:
			summary.Contradicted++
		case domain.VerdictPartiallyVerified:
			summary.PartiallyVerified++
		case domain.VerdictNotFound:
			summary.NotFound++
		}
	}
	return summary
}
