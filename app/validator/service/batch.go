package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TrustWeave/proofdao/app/validator"
	"github.com/TrustWeave/proofdao/app/validator/model"
	"github.com/TrustWeave/proofdao/common/log"
	"github.com/TrustWeave/proofdao/common/util"
)

// batchWindowSize caps concurrent submissions per window; with four
// evaluators each, peak concurrent outbound inference calls stay at 20.
const batchWindowSize = 5

type ValidateBatchReq struct {
	DAOID       string             `json:"daoId"`
	Tasks       []model.Task       `json:"tasks"`
	Submissions []model.Submission `json:"submissions"`
}

type ValidateBatchResp struct {
	BatchID string                   `json:"batchId"`
	Results []ValidateSubmissionResp `json:"results"`
}

// ValidateBatch runs the pipeline over many submissions in fixed windows,
// pausing between windows to smooth the request rate against the provider.
// Results are index-aligned with the submissions. A single item's transport
// failure degrades that item to a flagged needs-review result instead of
// aborting its siblings.
func (svc *ValidatorService) ValidateBatch(ctx context.Context, req ValidateBatchReq) (ValidateBatchResp, error) {
	tasksByID := make(map[string]model.Task, len(req.Tasks))
	for _, task := range req.Tasks {
		tasksByID[task.ID] = task
	}

	resp := ValidateBatchResp{
		BatchID: uuid.NewString(),
		Results: make([]ValidateSubmissionResp, len(req.Submissions)),
	}

	for windowStart := 0; windowStart < len(req.Submissions); windowStart += batchWindowSize {
		windowEnd := windowStart + batchWindowSize
		if windowEnd > len(req.Submissions) {
			windowEnd = len(req.Submissions)
		}

		var wg sync.WaitGroup
		for i := windowStart; i < windowEnd; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				submission := req.Submissions[i]
				task, ok := tasksByID[submission.TaskID]
				if !ok {
					validator.Logger().WithContext(ctx).Warnf("batch %s: no task %s for submission %s", resp.BatchID, submission.TaskID, submission.ID)
					resp.Results[i] = degradedResult(submission.ID)
					countDegraded(ctx)
					return
				}
				itemResp, err := svc.ValidateSubmission(ctx, ValidateSubmissionReq{Task: task, Submission: submission})
				if err != nil {
					validator.Logger().WithContext(ctx).Errorf("batch %s: validate submission %s: %s", resp.BatchID, submission.ID, err.Error())
					resp.Results[i] = degradedResult(submission.ID)
					countDegraded(ctx)
					svc.saveDegradedRecord(log.WithNoCancel(ctx), task, submission, resp.Results[i])
					return
				}
				resp.Results[i] = itemResp
			}(i)
		}
		wg.Wait()

		if windowEnd < len(req.Submissions) {
			select {
			case <-ctx.Done():
				return resp, ctx.Err()
			case <-time.After(svc.batchPause):
			}
		}
	}

	countBatch(ctx)
	return resp, nil
}

// degradedResult is the conservative substitute for an item whose evaluator
// calls failed: zero score, manual review, explicit processing-error flag.
func degradedResult(submissionID string) ValidateSubmissionResp {
	return ValidateSubmissionResp{
		ValidationResult: model.ValidationResult{
			Score:            0,
			ShouldApprove:    false,
			Confidence:       0,
			Recommendation:   model.RecommendationReview,
			Feedback:         "Automated validation failed; the submission is queued for manual review.",
			FlaggedIssues:    []string{model.FlagProcessingError},
			SuggestedActions: []string{model.ActionFlagHumanReview},
		},
		SubmissionID: submissionID,
		ValidatedAt:  util.Datetime(time.Now()),
	}
}
