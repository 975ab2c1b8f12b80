package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TrustWeave/proofdao/common/util"
)

// Primary reviewer verdicts.
const (
	VerdictApprove       = "APPROVE"
	VerdictReject        = "REJECT"
	VerdictNeedsRevision = "NEEDS_REVISION"
)

// Aggregated recommendations surfaced to the caller.
const (
	RecommendationApprove = "APPROVE"
	RecommendationReject  = "REJECT"
	RecommendationReview  = "REVIEW"
)

// Suggested action tags. Additive, not mutually exclusive.
const (
	ActionRejectSubmission  = "REJECT_SUBMISSION"
	ActionRequestRevision   = "REQUEST_REVISION"
	ActionApproveSubmission = "APPROVE_SUBMISSION"
	ActionFlagHumanReview   = "FLAG_FOR_HUMAN_REVIEW"
	ActionHighlightWork     = "HIGHLIGHT_EXCEPTIONAL_WORK"
)

const FlagProcessingError = "AI_PROCESSING_ERROR"

// PrimaryReview is the structured output of the primary review evaluator.
type PrimaryReview struct {
	Score             int      `bson:"score" json:"score"`
	MeetsRequirements bool     `bson:"meetsRequirements" json:"meetsRequirements"`
	Completeness      int      `bson:"completeness" json:"completeness"`
	Quality           int      `bson:"quality" json:"quality"`
	KeyIssues         []string `bson:"keyIssues" json:"keyIssues"`
	Strengths         []string `bson:"strengths" json:"strengths"`
	Recommendation    string   `bson:"recommendation" json:"recommendation"`
}

// QualityMetrics dimensions are all on a 0-100 scale.
type QualityMetrics struct {
	Completeness   int `bson:"completeness" json:"completeness"`
	Accuracy       int `bson:"accuracy" json:"accuracy"`
	Presentation   int `bson:"presentation" json:"presentation"`
	Innovation     int `bson:"innovation" json:"innovation"`
	OverallQuality int `bson:"overallQuality" json:"overallQuality"`
	TechnicalDepth int `bson:"technicalDepth" json:"technicalDepth"`
	Documentation  int `bson:"documentation" json:"documentation"`
	BestPractices  int `bson:"bestPractices" json:"bestPractices"`
}

type FraudSignal struct {
	RiskScore           int      `bson:"riskScore" json:"riskScore"`
	SuspiciousFlags     []string `bson:"suspiciousFlags" json:"suspiciousFlags"`
	Confidence          float64  `bson:"confidence" json:"confidence"`
	RequiresHumanReview bool     `bson:"requiresHumanReview" json:"requiresHumanReview"`
	EvidencePoints      []string `bson:"evidencePoints" json:"evidencePoints"`
}

type ReviewFeedback struct {
	PositiveFeedback    string   `bson:"positiveFeedback" json:"positiveFeedback"`
	ImprovementAreas    []string `bson:"improvementAreas" json:"improvementAreas"`
	SpecificSuggestions []string `bson:"specificSuggestions" json:"specificSuggestions"`
	Encouragement       string   `bson:"encouragement" json:"encouragement"`
	NextSteps           string   `bson:"nextSteps" json:"nextSteps"`
}

// ValidationResult is the calibrated decision for one submission. It is a
// value: once produced it is never mutated.
type ValidationResult struct {
	Score            int      `bson:"score" json:"aiScore"`
	ShouldApprove    bool     `bson:"shouldApprove" json:"shouldApprove"`
	Confidence       float64  `bson:"confidence" json:"confidence"`
	Recommendation   string   `bson:"recommendation" json:"aiRecommendation"`
	Feedback         string   `bson:"feedback" json:"aiFeedback"`
	FlaggedIssues    []string `bson:"flaggedIssues" json:"aiFlags"`
	SuggestedActions []string `bson:"suggestedActions" json:"suggestedActions"`
}

// ValidationRecord is the persisted audit trail of one pipeline run. Raw
// evaluator responses are stored gzip-compressed via the GzipJSON codec.
type ValidationRecord struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	TaskID       string             `bson:"taskId" json:"taskId"`
	SubmissionID string             `bson:"submissionId" json:"submissionId"`
	Contributor  string             `bson:"contributor" json:"contributor"`
	Result       ValidationResult   `bson:"result" json:"result"`
	Degraded     bool               `bson:"degraded" json:"degraded"`
	ParsedAll    bool               `bson:"parsedAll" json:"parsedAll"`
	RawResponses util.GzipJSON      `bson:"rawResponses" json:"rawResponses,omitempty"`
	ProcessingMs int64              `bson:"processingMs" json:"processingMs"`
	ValidatedAt  util.Datetime      `bson:"validatedAt" json:"validatedAt"`
}
