package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/TrustWeave/proofdao/app/validator/model"
	"github.com/TrustWeave/proofdao/common/log"
)

// ParseModelResponse extracts JSON from raw model output. Models are asked
// for bare JSON but routinely wrap it in markdown fences or prose, so the
// extraction is defensive: trim, strip fences, then try the outermost
// object, the outermost array, and finally the whole string. On failure it
// returns the caller's fallback unchanged and reports parsed=false; it never
// returns an error. This is the single chokepoint keeping malformed model
// output away from the rest of the pipeline.
func ParseModelResponse[T any](ctx context.Context, raw string, fallback T) (T, bool) {
	for _, candidate := range jsonCandidates(raw) {
		var out T
		if err := json.Unmarshal([]byte(candidate), &out); err == nil {
			return out, true
		}
	}
	log.Logger().WithContext(ctx).Warnf("parse model response failed, using fallback: %q", raw)
	parseFallbacks(ctx)
	return fallback, false
}

func jsonCandidates(raw string) []string {
	trimmed := stripFences(strings.TrimSpace(raw))
	candidates := make([]string, 0, 3)
	if start, end := strings.Index(trimmed, "{"), strings.LastIndex(trimmed, "}"); start >= 0 && end > start {
		candidates = append(candidates, trimmed[start:end+1])
	}
	if start, end := strings.Index(trimmed, "["), strings.LastIndex(trimmed, "]"); start >= 0 && end > start {
		candidates = append(candidates, trimmed[start:end+1])
	}
	return append(candidates, trimmed)
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Fallbacks deliberately bias toward caution: mid scores and a human-review
// flag rather than false confidence in either direction.

func fallbackPrimaryReview() model.PrimaryReview {
	return model.PrimaryReview{
		Score:             50,
		MeetsRequirements: false,
		Completeness:      50,
		Quality:           50,
		KeyIssues:         []string{"Failed to parse AI response"},
		Strengths:         []string{},
		Recommendation:    model.VerdictNeedsRevision,
	}
}

func fallbackQualityMetrics() model.QualityMetrics {
	return model.QualityMetrics{
		Completeness:   50,
		Accuracy:       50,
		Presentation:   50,
		Innovation:     50,
		OverallQuality: 50,
		TechnicalDepth: 50,
		Documentation:  50,
		BestPractices:  50,
	}
}

func fallbackFraudSignal() model.FraudSignal {
	return model.FraudSignal{
		RiskScore:           30,
		SuspiciousFlags:     []string{},
		Confidence:          0.3,
		RequiresHumanReview: true,
		EvidencePoints:      []string{},
	}
}

func fallbackReviewFeedback() model.ReviewFeedback {
	return model.ReviewFeedback{
		PositiveFeedback:    "Thank you for your submission.",
		ImprovementAreas:    []string{"Automated feedback is unavailable for this submission"},
		SpecificSuggestions: []string{},
		Encouragement:       "Your work has been received and will be reviewed.",
		NextSteps:           "Await reviewer feedback.",
	}
}

func fallbackSuggestions() []string {
	return []string{"Unable to generate suggestions due to parsing error"}
}
