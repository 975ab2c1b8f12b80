package service

import (
	"context"
	"sync"

	"github.com/TrustWeave/proofdao/app/validator/model"
)

// evaluatorOutputs carries the four parsed evaluator results for one
// submission, plus per-evaluator parse outcomes so degraded (fallback)
// results stay distinguishable from trusted ones.
type evaluatorOutputs struct {
	Primary  model.PrimaryReview
	Quality  model.QualityMetrics
	Fraud    model.FraudSignal
	Feedback model.ReviewFeedback

	PrimaryParsed  bool
	QualityParsed  bool
	FraudParsed    bool
	FeedbackParsed bool

	rawPrimary  string
	rawQuality  string
	rawFraud    string
	rawFeedback string
}

func (o evaluatorOutputs) allParsed() bool {
	return o.PrimaryParsed && o.QualityParsed && o.FraudParsed && o.FeedbackParsed
}

// runEvaluators fans one submission out to the four evaluators concurrently
// and waits for all of them. The evaluator set is small and statically known,
// so this is a fixed-arity join: each goroutine writes only its own slots.
// Any transport failure fails the whole evaluation; parse failures are
// absorbed into fallbacks and never surface here as errors.
func (svc *ValidatorService) runEvaluators(ctx context.Context, task model.Task, submission model.Submission) (evaluatorOutputs, error) {
	var (
		out  evaluatorOutputs
		errs [4]error
		wg   sync.WaitGroup
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		raw, err := svc.inference.Complete(ctx, primaryReviewInstructions, buildPrimaryReviewPrompt(task, submission))
		if err != nil {
			errs[0] = err
			return
		}
		out.rawPrimary = raw
		out.Primary, out.PrimaryParsed = ParseModelResponse(ctx, raw, fallbackPrimaryReview())
	}()
	go func() {
		defer wg.Done()
		raw, err := svc.inference.Complete(ctx, qualityMetricsInstructions, buildQualityMetricsPrompt(task, submission))
		if err != nil {
			errs[1] = err
			return
		}
		out.rawQuality = raw
		out.Quality, out.QualityParsed = ParseModelResponse(ctx, raw, fallbackQualityMetrics())
	}()
	go func() {
		defer wg.Done()
		raw, err := svc.inference.Complete(ctx, fraudDetectionInstructions, buildFraudDetectionPrompt(task, submission))
		if err != nil {
			errs[2] = err
			return
		}
		out.rawFraud = raw
		out.Fraud, out.FraudParsed = ParseModelResponse(ctx, raw, fallbackFraudSignal())
	}()
	go func() {
		defer wg.Done()
		raw, err := svc.inference.Complete(ctx, feedbackInstructions, buildFeedbackPrompt(task, submission))
		if err != nil {
			errs[3] = err
			return
		}
		out.rawFeedback = raw
		out.Feedback, out.FeedbackParsed = ParseModelResponse(ctx, raw, fallbackReviewFeedback())
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return evaluatorOutputs{}, err
		}
	}
	return out, nil
}
