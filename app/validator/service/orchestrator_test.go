package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/TrustWeave/proofdao/app/validator/model"
)

// stubProvider fakes an OpenAI-compatible endpoint. respond receives the
// system and user messages of each chat request and returns the status and
// completion text for it.
func stubProvider(t *testing.T, respond func(system, user string) (int, string)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models" {
			w.WriteHeader(http.StatusOK)
			return
		}
		var req struct {
			Messages []chatMessage `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) < 2 {
			t.Errorf("malformed chat request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		status, content := respond(req.Messages[0].Content, req.Messages[1].Content)
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"stub failure"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
}

func newTestService(baseURL string) *ValidatorService {
	return &ValidatorService{
		inference: &inferenceClient{
			client:  resty.New(),
			baseURL: baseURL,
			model:   "stub-model",
			apiKey:  "test-key",
		},
		batchPause: time.Millisecond,
	}
}

// respondByRole dispatches on the distinguishing phrase of each evaluator's
// system instructions.
func respondByRole(primary, quality, fraud, feedback string) func(string, string) (int, string) {
	return func(system, _ string) (int, string) {
		switch {
		case strings.Contains(system, "strict reviewer"):
			return http.StatusOK, primary
		case strings.Contains(system, "quality analyst"):
			return http.StatusOK, quality
		case strings.Contains(system, "fraud and risk analyst"):
			return http.StatusOK, fraud
		case strings.Contains(system, "constructive feedback"):
			return http.StatusOK, feedback
		default:
			return http.StatusBadRequest, ""
		}
	}
}

func testTask() model.Task {
	return model.Task{
		ID:           "task-1",
		Title:        "Write onboarding docs",
		Description:  "Document the contributor onboarding flow",
		Requirements: "Cover signup, first task, and payout",
		Skills:       []string{"writing"},
		Reward:       50,
	}
}

func testSubmission(id string) model.Submission {
	return model.Submission{
		ID:          id,
		TaskID:      "task-1",
		Contributor: "alice",
		WorkURL:     "https://example.com/docs",
		Description: "Full onboarding guide with screenshots",
	}
}

func TestRunEvaluators(t *testing.T) {
	srv := stubProvider(t, respondByRole(
		`{"score": 90, "meetsRequirements": true, "keyIssues": [], "strengths": ["thorough"], "recommendation": "APPROVE"}`,
		`{"overallQuality": 85, "innovation": 60}`,
		"```json\n{\"riskScore\": 10, \"suspiciousFlags\": [], \"confidence\": 0.9, \"requiresHumanReview\": false}\n```",
		`{"positiveFeedback": "Great work.", "improvementAreas": ["tests"]}`,
	))
	defer srv.Close()

	svc := newTestService(srv.URL)
	outs, err := svc.runEvaluators(context.Background(), testTask(), testSubmission("sub-1"))
	if err != nil {
		t.Fatalf("runEvaluators() error = %v", err)
	}
	if !outs.allParsed() {
		t.Errorf("allParsed() = false, want true: %+v", outs)
	}
	if outs.Primary.Score != 90 || !outs.Primary.MeetsRequirements {
		t.Errorf("Primary = %+v, want score 90 meetsRequirements", outs.Primary)
	}
	if outs.Quality.OverallQuality != 85 {
		t.Errorf("Quality.OverallQuality = %d, want 85", outs.Quality.OverallQuality)
	}
	if outs.Fraud.RiskScore != 10 {
		t.Errorf("Fraud.RiskScore = %d, want 10", outs.Fraud.RiskScore)
	}
	if outs.Feedback.PositiveFeedback != "Great work." {
		t.Errorf("Feedback.PositiveFeedback = %q", outs.Feedback.PositiveFeedback)
	}
}

func TestRunEvaluatorsAbsorbsParseFailures(t *testing.T) {
	srv := stubProvider(t, respondByRole(
		"I decline to answer in JSON.",
		`{"overallQuality": 70}`,
		`{"riskScore": 5, "requiresHumanReview": false}`,
		`{"positiveFeedback": "ok"}`,
	))
	defer srv.Close()

	svc := newTestService(srv.URL)
	outs, err := svc.runEvaluators(context.Background(), testTask(), testSubmission("sub-2"))
	if err != nil {
		t.Fatalf("runEvaluators() error = %v", err)
	}
	if outs.PrimaryParsed {
		t.Error("PrimaryParsed = true, want false")
	}
	if outs.allParsed() {
		t.Error("allParsed() = true, want false")
	}
	if got := fallbackPrimaryReview(); outs.Primary.Score != got.Score || outs.Primary.Recommendation != got.Recommendation {
		t.Errorf("Primary = %+v, want fallback %+v", outs.Primary, got)
	}
}

func TestRunEvaluatorsTransportFailure(t *testing.T) {
	srv := stubProvider(t, func(system, user string) (int, string) {
		if strings.Contains(system, "fraud and risk analyst") {
			return http.StatusInternalServerError, ""
		}
		return respondByRole(
			`{"score": 80}`, `{"overallQuality": 80}`, "", `{"positiveFeedback": "ok"}`,
		)(system, user)
	})
	defer srv.Close()

	svc := newTestService(srv.URL)
	_, err := svc.runEvaluators(context.Background(), testTask(), testSubmission("sub-3"))
	if err == nil {
		t.Fatal("runEvaluators() error = nil, want transport error")
	}
	var ie *InferenceError
	if !errors.As(err, &ie) {
		t.Fatalf("error = %v, want *InferenceError", err)
	}
	if ie.Op != "chat" {
		t.Errorf("InferenceError.Op = %q, want chat", ie.Op)
	}
}

func TestValidateSubmission(t *testing.T) {
	srv := stubProvider(t, respondByRole(
		`{"score": 90, "meetsRequirements": true, "keyIssues": []}`,
		`{"overallQuality": 85, "innovation": 60}`,
		`{"riskScore": 10, "suspiciousFlags": []}`,
		`{"positiveFeedback": "Great work.", "improvementAreas": ["tests"]}`,
	))
	defer srv.Close()

	svc := newTestService(srv.URL)
	got, err := svc.ValidateSubmission(context.Background(), ValidateSubmissionReq{
		Task:       testTask(),
		Submission: testSubmission("sub-4"),
	})
	if err != nil {
		t.Fatalf("ValidateSubmission() error = %v", err)
	}
	if got.Score != 89 {
		t.Errorf("Score = %d, want 89", got.Score)
	}
	if !got.ShouldApprove {
		t.Error("ShouldApprove = false, want true")
	}
	if got.Recommendation != model.RecommendationApprove {
		t.Errorf("Recommendation = %s, want APPROVE", got.Recommendation)
	}
	if got.SubmissionID != "sub-4" {
		t.Errorf("SubmissionID = %q, want sub-4", got.SubmissionID)
	}
	if time.Time(got.ValidatedAt).IsZero() {
		t.Error("ValidatedAt is zero")
	}
}

func TestCompleteSurfacesProviderErrorMessage(t *testing.T) {
	srv := stubProvider(t, func(string, string) (int, string) {
		return http.StatusInternalServerError, ""
	})
	defer srv.Close()

	svc := newTestService(srv.URL)
	_, err := svc.inference.Complete(context.Background(), "sys", "prompt")
	if err == nil {
		t.Fatal("Complete() error = nil, want provider error")
	}
	if !strings.Contains(err.Error(), "stub failure") {
		t.Errorf("error = %v, want provider message included", err)
	}
}

func TestValidateSubmissionNotConfigured(t *testing.T) {
	svc := &ValidatorService{
		inference:  &inferenceClient{client: resty.New(), baseURL: "http://127.0.0.1:0", model: "stub"},
		batchPause: time.Millisecond,
	}
	_, err := svc.ValidateSubmission(context.Background(), ValidateSubmissionReq{
		Task:       testTask(),
		Submission: testSubmission("sub-5"),
	})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestSuggestTaskImprovements(t *testing.T) {
	srv := stubProvider(t, func(system, _ string) (int, string) {
		if !strings.Contains(system, "task creators") {
			return http.StatusBadRequest, ""
		}
		return http.StatusOK, `["add acceptance criteria", "state the deadline"]`
	})
	defer srv.Close()

	svc := newTestService(srv.URL)
	got, err := svc.SuggestTaskImprovements(context.Background(), testTask())
	if err != nil {
		t.Fatalf("SuggestTaskImprovements() error = %v", err)
	}
	want := []string{"add acceptance criteria", "state the deadline"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("SuggestTaskImprovements() = %v, want %v", got, want)
	}
}
