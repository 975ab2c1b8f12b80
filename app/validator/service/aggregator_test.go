package service

import (
	"math"
	"reflect"
	"testing"

	"github.com/TrustWeave/proofdao/app/validator/model"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		name     string
		primary  model.PrimaryReview
		quality  model.QualityMetrics
		fraud    model.FraudSignal
		feedback model.ReviewFeedback
		want     model.ValidationResult
	}{
		{
			name:    "strong submission approves",
			primary: model.PrimaryReview{Score: 90, MeetsRequirements: true, KeyIssues: []string{}},
			quality: model.QualityMetrics{OverallQuality: 85, Innovation: 60},
			fraud:   model.FraudSignal{RiskScore: 10, SuspiciousFlags: []string{}},
			feedback: model.ReviewFeedback{
				PositiveFeedback: "Great work.",
				ImprovementAreas: []string{"tests"},
			},
			want: model.ValidationResult{
				Score:            89,
				ShouldApprove:    true,
				Confidence:       0.95,
				Recommendation:   model.RecommendationApprove,
				Feedback:         "Great work.\n\nAreas for improvement: tests",
				FlaggedIssues:    []string{},
				SuggestedActions: []string{model.ActionApproveSubmission},
			},
		},
		{
			name:    "weak submission rejects",
			primary: model.PrimaryReview{Score: 30, MeetsRequirements: false, KeyIssues: []string{"incomplete"}},
			quality: model.QualityMetrics{OverallQuality: 40},
			fraud:   model.FraudSignal{RiskScore: 60, SuspiciousFlags: []string{"recycled"}},
			feedback: model.ReviewFeedback{
				PositiveFeedback: "Thanks.",
				ImprovementAreas: []string{"coverage", "clarity"},
			},
			want: model.ValidationResult{
				Score:            36,
				ShouldApprove:    false,
				Confidence:       0.9,
				Recommendation:   model.RecommendationReject,
				Feedback:         "Thanks.\n\nAreas for improvement: coverage, clarity",
				FlaggedIssues:    []string{"incomplete", "recycled"},
				SuggestedActions: []string{model.ActionRejectSubmission},
			},
		},
		{
			name:    "middle score requests revision",
			primary: model.PrimaryReview{Score: 65, MeetsRequirements: true, KeyIssues: []string{}},
			quality: model.QualityMetrics{OverallQuality: 65},
			fraud:   model.FraudSignal{RiskScore: 30, SuspiciousFlags: []string{}},
			feedback: model.ReviewFeedback{
				PositiveFeedback: "Solid start.",
				ImprovementAreas: []string{"depth"},
			},
			want: model.ValidationResult{
				Score:            67,
				ShouldApprove:    false,
				Confidence:       1,
				Recommendation:   model.RecommendationReview,
				Feedback:         "Solid start.\n\nAreas for improvement: depth",
				FlaggedIssues:    []string{},
				SuggestedActions: []string{model.ActionRequestRevision},
			},
		},
		{
			name:    "human review and exceptional innovation stack actions",
			primary: model.PrimaryReview{Score: 92, MeetsRequirements: true, KeyIssues: []string{}},
			quality: model.QualityMetrics{OverallQuality: 90, Innovation: 95},
			fraud:   model.FraudSignal{RiskScore: 5, SuspiciousFlags: []string{}, RequiresHumanReview: true},
			feedback: model.ReviewFeedback{
				PositiveFeedback: "Outstanding.",
				ImprovementAreas: []string{},
			},
			want: model.ValidationResult{
				Score:            92,
				ShouldApprove:    true,
				Confidence:       0.98,
				Recommendation:   model.RecommendationApprove,
				Feedback:         "Outstanding.\n\nAreas for improvement: ",
				FlaggedIssues:    []string{},
				SuggestedActions: []string{model.ActionApproveSubmission, model.ActionFlagHumanReview, model.ActionHighlightWork},
			},
		},
		{
			name:    "too many flags force reject despite high score",
			primary: model.PrimaryReview{Score: 85, MeetsRequirements: false, KeyIssues: []string{"a", "b"}},
			quality: model.QualityMetrics{OverallQuality: 85},
			fraud:   model.FraudSignal{RiskScore: 20, SuspiciousFlags: []string{"c"}},
			feedback: model.ReviewFeedback{
				PositiveFeedback: "Hm.",
				ImprovementAreas: []string{"x"},
			},
			want: model.ValidationResult{
				Score:            84,
				ShouldApprove:    false,
				Confidence:       1,
				Recommendation:   model.RecommendationReject,
				Feedback:         "Hm.\n\nAreas for improvement: x",
				FlaggedIssues:    []string{"a", "b", "c"},
				SuggestedActions: []string{model.ActionApproveSubmission},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Combine(tt.primary, tt.quality, tt.fraud, tt.feedback)
			if math.Abs(got.Confidence-tt.want.Confidence) > 1e-9 {
				t.Errorf("Combine().Confidence = %v, want %v", got.Confidence, tt.want.Confidence)
			}
			got.Confidence = tt.want.Confidence
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Combine() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCombineDeterministic(t *testing.T) {
	primary := model.PrimaryReview{Score: 77, MeetsRequirements: true, KeyIssues: []string{"minor"}}
	quality := model.QualityMetrics{OverallQuality: 70, Innovation: 80}
	fraud := model.FraudSignal{RiskScore: 15, SuspiciousFlags: []string{}}
	feedback := model.ReviewFeedback{PositiveFeedback: "Nice.", ImprovementAreas: []string{"docs"}}

	first := Combine(primary, quality, fraud, feedback)
	for i := 0; i < 100; i++ {
		if got := Combine(primary, quality, fraud, feedback); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: Combine() = %+v, want %+v", i, got, first)
		}
	}
}

func TestCombineScoreBounds(t *testing.T) {
	tests := []struct {
		name    string
		primary model.PrimaryReview
		quality model.QualityMetrics
		fraud   model.FraudSignal
		want    int
	}{
		{"all maxed", model.PrimaryReview{Score: 100}, model.QualityMetrics{OverallQuality: 100}, model.FraudSignal{RiskScore: 0}, 100},
		{"all floored", model.PrimaryReview{Score: 0}, model.QualityMetrics{OverallQuality: 0}, model.FraudSignal{RiskScore: 100}, 0},
		{"half away from zero", model.PrimaryReview{Score: 85}, model.QualityMetrics{OverallQuality: 85}, model.FraudSignal{RiskScore: 30}, 81},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Combine(tt.primary, tt.quality, tt.fraud, model.ReviewFeedback{})
			if got.Score != tt.want {
				t.Errorf("Combine().Score = %d, want %d", got.Score, tt.want)
			}
			if got.Score < 0 || got.Score > 100 {
				t.Errorf("Combine().Score = %d out of [0,100]", got.Score)
			}
		})
	}
}

func TestCombineConfidenceFloor(t *testing.T) {
	got := Combine(
		model.PrimaryReview{Score: 100, MeetsRequirements: true},
		model.QualityMetrics{OverallQuality: 0},
		model.FraudSignal{RiskScore: 0},
		model.ReviewFeedback{},
	)
	if got.Confidence != 0.5 {
		t.Errorf("Combine().Confidence = %v, want 0.5", got.Confidence)
	}
}

func TestCombineHighRiskBlocksApproval(t *testing.T) {
	got := Combine(
		model.PrimaryReview{Score: 95, MeetsRequirements: true, KeyIssues: []string{}},
		model.QualityMetrics{OverallQuality: 95},
		model.FraudSignal{RiskScore: 35, SuspiciousFlags: []string{}},
		model.ReviewFeedback{},
	)
	if got.ShouldApprove {
		t.Error("Combine().ShouldApprove = true with riskScore 35, want false")
	}
	if got.Recommendation == model.RecommendationApprove {
		t.Errorf("Combine().Recommendation = %s, want not APPROVE", got.Recommendation)
	}
}

func TestRecommendNeverOutrunsShouldApprove(t *testing.T) {
	// APPROVE is only reachable when shouldApprove already holds.
	for score := 0; score <= 100; score += 5 {
		for _, conf := range []float64{0.5, 0.8, 0.81, 1} {
			if recommend(score, false, conf, nil) == model.RecommendationApprove {
				t.Fatalf("recommend(%d, false, %v, nil) = APPROVE", score, conf)
			}
		}
	}
	if got := recommend(80, true, 0.8, nil); got == model.RecommendationApprove {
		t.Errorf("recommend with confidence at the 0.8 boundary = APPROVE, want REVIEW")
	}
}
