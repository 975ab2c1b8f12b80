package service

import (
	"math"
	"strings"

	"github.com/TrustWeave/proofdao/app/validator/model"
)

// Score weights: primary review 40%, overall quality 30%, inverted fraud
// risk 30%.
const (
	weightPrimary = 0.4
	weightQuality = 0.3
	weightRisk    = 0.3
)

const (
	approveScoreThreshold  = 75
	revisionScoreThreshold = 60
	rejectScoreThreshold   = 40
	maxRiskForApproval     = 30
	minConfidence          = 0.5
	approveConfidenceFloor = 0.8
	exceptionalInnovation  = 90
	maxFlagsForReview      = 2
)

// Combine folds the four evaluator outputs into one calibrated decision.
// Pure function: same inputs, same result, no clock and no randomness.
func Combine(primary model.PrimaryReview, quality model.QualityMetrics, fraud model.FraudSignal, feedback model.ReviewFeedback) model.ValidationResult {
	score := int(math.Round(
		float64(primary.Score)*weightPrimary +
			float64(quality.OverallQuality)*weightQuality +
			float64(100-fraud.RiskScore)*weightRisk))
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	shouldApprove := score >= approveScoreThreshold &&
		fraud.RiskScore < maxRiskForApproval &&
		primary.MeetsRequirements

	// When the two independent quality signals disagree strongly, confidence
	// in either is reduced; it never drops below 0.5.
	diff := primary.Score - quality.OverallQuality
	if diff < 0 {
		diff = -diff
	}
	confidence := 1 - float64(diff)/100
	if confidence < minConfidence {
		confidence = minConfidence
	}

	flagged := make([]string, 0, len(primary.KeyIssues)+len(fraud.SuspiciousFlags))
	flagged = append(flagged, primary.KeyIssues...)
	flagged = append(flagged, fraud.SuspiciousFlags...)

	text := feedback.PositiveFeedback +
		"\n\nAreas for improvement: " + strings.Join(feedback.ImprovementAreas, ", ")

	actions := make([]string, 0, 3)
	switch {
	case score < revisionScoreThreshold:
		actions = append(actions, model.ActionRejectSubmission)
	case score < approveScoreThreshold:
		actions = append(actions, model.ActionRequestRevision)
	default:
		actions = append(actions, model.ActionApproveSubmission)
	}
	if fraud.RequiresHumanReview {
		actions = append(actions, model.ActionFlagHumanReview)
	}
	if quality.Innovation > exceptionalInnovation {
		actions = append(actions, model.ActionHighlightWork)
	}

	return model.ValidationResult{
		Score:            score,
		ShouldApprove:    shouldApprove,
		Confidence:       confidence,
		Recommendation:   recommend(score, shouldApprove, confidence, flagged),
		Feedback:         text,
		FlaggedIssues:    flagged,
		SuggestedActions: actions,
	}
}

// recommend derives the three-valued recommendation for UI consumption. It
// is strictly more conservative than shouldApprove: every APPROVE also
// satisfies shouldApprove, not vice versa.
func recommend(score int, shouldApprove bool, confidence float64, flagged []string) string {
	switch {
	case shouldApprove && confidence > approveConfidenceFloor:
		return model.RecommendationApprove
	case score < rejectScoreThreshold || len(flagged) > maxFlagsForReview:
		return model.RecommendationReject
	default:
		return model.RecommendationReview
	}
}
