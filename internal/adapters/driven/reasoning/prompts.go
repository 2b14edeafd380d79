// Package reasoning holds the prompt templates and response parsing
// shared by the reasoning provider adapters. Providers differ only in
// transport; the judgment contract is identical across them.
package reasoning

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
)

// JudgeSystemPrompt instructs the model to assess a claim against
// evidence and answer in strict JSON.
const JudgeSystemPrompt = `You are a financial fact-checker. You are given a claim made in spoken content and numbered excerpts from a company's official filings. Assess whether the excerpts support the claim.

Respond with a single JSON object:
{
  "support": "supported" | "contradicted" | "partial" | "absent",
  "cited_chunk_ids": ["<id of every excerpt your assessment relies on>"],
  "explanation": "<one or two sentences>",
  "numeric_comparison": {"claimed_value": <number>, "source_value": <number>, "metric": "<what is measured>"}
}

Rules:
- "supported": the excerpts state the same fact.
- "contradicted": an excerpt states a materially different fact.
- "partial": the excerpts address the claim but only partly confirm it.
- "absent": no excerpt addresses the claim's subject.
- Include "numeric_comparison" only when the claim and an excerpt state the same metric as a number. Report both values at the same scale.
- Cite only the excerpt ids you were given. Never invent ids.`

// ExtractSystemPrompt instructs the model to pull factual claims out
// of a transcript.
const ExtractSystemPrompt = `You extract verifiable factual claims from transcripts of spoken content about a company.

Respond with a single JSON object:
{
  "claims": [
    {
      "text": "<the claim, as a standalone sentence>",
      "category": "revenue" | "growth" | "users" | "market" | "projection" | "strategy" | "costs" | "other",
      "numerical_values": ["<each number as spoken, e.g. '25%', '$3.2 billion'>"],
      "timestamp_seconds": <offset into the recording, or 0 if unknown>
    }
  ]
}

Extract only statements of fact that official filings could confirm or refute. Skip opinions, pleasantries, and forward-looking hedges without figures.`

// BuildJudgePrompt renders the user message for one claim and its
// evidence set.
func BuildJudgePrompt(claimText string, evidence []domain.Chunk) string {
	var b strings.Builder
	b.WriteString("Claim:\n")
	b.WriteString(claimText)
	b.WriteString("\n\nExcerpts:\n")
	for _, chunk := range evidence {
		fmt.Fprintf(&b, "[id=%s page=%d] %s\n\n", chunk.ID, chunk.PageNumber, chunk.Text)
	}
	return b.String()
}

// BuildExtractPrompt renders the user message for claim extraction.
func BuildExtractPrompt(transcript string) string {
	return "Transcript:\n" + transcript
}

// judgmentPayload is the model's JSON response format.
type judgmentPayload struct {
	Support           string   `json:"support"`
	CitedChunkIDs     []string `json:"cited_chunk_ids"`
	Explanation       string   `json:"explanation"`
	NumericComparison *struct {
		ClaimedValue float64 `json:"claimed_value"`
		SourceValue  float64 `json:"source_value"`
		Metric       string  `json:"metric"`
	} `json:"numeric_comparison"`
}

// ParseJudgment decodes a model response into a domain judgment.
// Unknown support levels degrade to absent rather than failing.
func ParseJudgment(raw string) (*domain.Judgment, error) {
	var payload judgmentPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("parsing judgment: %w", err)
	}

	judgment := &domain.Judgment{
		Support:       domain.SupportAbsent,
		CitedChunkIDs: payload.CitedChunkIDs,
		Explanation:   payload.Explanation,
	}

	switch domain.SupportLevel(strings.ToLower(payload.Support)) {
	case domain.SupportSupported:
		judgment.Support = domain.SupportSupported
	case domain.SupportContradicted:
		judgment.Support = domain.SupportContradicted
	case domain.SupportPartial:
		judgment.Support = domain.SupportPartial
	}

	if payload.NumericComparison != nil {
		judgment.Numeric = &domain.NumericComparison{
			ClaimedValue: payload.NumericComparison.ClaimedValue,
			SourceValue:  payload.NumericComparison.SourceValue,
			Metric:       payload.NumericComparison.Metric,
		}
	}

	return judgment, nil
}

// claimsPayload is the model's JSON response format for extraction.
type claimsPayload struct {
	Claims []struct {
		Text             string   `json:"text"`
		Category         string   `json:"category"`
		NumericalValues  []string `json:"numerical_values"`
		TimestampSeconds float64  `json:"timestamp_seconds"`
	} `json:"claims"`
}

// knownCategories is the closed claim taxonomy.
var knownCategories = map[string]bool{
	"revenue": true, "growth": true, "users": true, "market": true,
	"projection": true, "strategy": true, "costs": true, "other": true,
}

// ParseClaims decodes a model response into domain claims. Claims with
// empty text are dropped; unknown categories fold into "other".
func ParseClaims(raw string) ([]domain.Claim, error) {
	var payload claimsPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("parsing claims: %w", err)
	}

	claims := make([]domain.Claim, 0, len(payload.Claims))
	for _, c := range payload.Claims {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}

		category := strings.ToLower(strings.TrimSpace(c.Category))
		if !knownCategories[category] {
			category = "other"
		}

		claims = append(claims, domain.Claim{
			Text:            text,
			Category:        category,
			NumericalValues: c.NumericalValues,
			SourceTimestamp: time.Duration(c.TimestampSeconds * float64(time.Second)),
		})
	}
	return claims, nil
}

// extractJSON trims any prose the model wrapped around the JSON object.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
