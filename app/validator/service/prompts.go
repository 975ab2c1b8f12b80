package service

import (
	"fmt"
	"strings"

	"github.com/TrustWeave/proofdao/app/validator/model"
)

// System instructions per evaluator role. Each demands a bare JSON object;
// that is a cooperative contract with the model, not a guarantee, so the
// parser never assumes it holds.

const primaryReviewInstructions = `You are a strict reviewer for a task marketplace.
Evaluate whether a submission fulfills the stated task requirements.
Respond with ONLY a JSON object, no markdown fences and no surrounding prose, with exactly these fields:
{"score": 0-100, "meetsRequirements": true|false, "completeness": 0-100, "quality": 0-100, "keyIssues": ["..."], "strengths": ["..."], "recommendation": "APPROVE"|"REJECT"|"NEEDS_REVISION"}`

const qualityMetricsInstructions = `You are a quality analyst for contributor submissions.
Rate the submission on each dimension from 0 to 100.
Respond with ONLY a JSON object, no markdown fences and no surrounding prose, with exactly these fields:
{"completeness": 0-100, "accuracy": 0-100, "presentation": 0-100, "innovation": 0-100, "overallQuality": 0-100, "technicalDepth": 0-100, "documentation": 0-100, "bestPractices": 0-100}`

const fraudDetectionInstructions = `You are a fraud and risk analyst for a task marketplace.
Look for plagiarism, fabricated proof of work, recycled submissions and low-effort spam.
Respond with ONLY a JSON object, no markdown fences and no surrounding prose, with exactly these fields:
{"riskScore": 0-100, "suspiciousFlags": ["..."], "confidence": 0.0-1.0, "requiresHumanReview": true|false, "evidencePoints": ["..."]}`

const feedbackInstructions = `You write constructive feedback for contributors on a task marketplace.
Be specific and encouraging.
Respond with ONLY a JSON object, no markdown fences and no surrounding prose, with exactly these fields:
{"positiveFeedback": "...", "improvementAreas": ["..."], "specificSuggestions": ["..."], "encouragement": "...", "nextSteps": "..."}`

const suggestionsInstructions = `You help task creators write clearer task requirements.
Respond with ONLY a JSON array of suggestion strings, no markdown fences and no surrounding prose, for example:
["suggestion one", "suggestion two"]`

func describeTask(task model.Task) string {
	return fmt.Sprintf("Task: %s\nDescription: %s\nRequirements: %s\nSkills: %s\nReward: %v",
		task.Title, task.Description, task.Requirements, strings.Join(task.Skills, ", "), task.Reward)
}

func describeSubmission(submission model.Submission) string {
	return fmt.Sprintf("Submission by %s\nWork: %s\nProof/description: %s",
		submission.Contributor, submission.WorkURL, submission.Description)
}

func buildPrimaryReviewPrompt(task model.Task, submission model.Submission) string {
	return describeTask(task) + "\n\n" + describeSubmission(submission) +
		"\n\nEvaluate whether this submission meets the task requirements."
}

func buildQualityMetricsPrompt(task model.Task, submission model.Submission) string {
	return describeTask(task) + "\n\n" + describeSubmission(submission) +
		"\n\nRate the quality of this submission on every dimension."
}

func buildFraudDetectionPrompt(task model.Task, submission model.Submission) string {
	return describeTask(task) + "\n\n" + describeSubmission(submission) +
		"\n\nAssess the fraud risk of this submission."
}

func buildFeedbackPrompt(task model.Task, submission model.Submission) string {
	return describeTask(task) + "\n\n" + describeSubmission(submission) +
		"\n\nWrite feedback for the contributor."
}

func buildSuggestionsPrompt(task model.Task) string {
	return describeTask(task) +
		"\n\nSuggest improvements that would make the task requirements clearer for contributors."
}
