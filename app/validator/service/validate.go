package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/TrustWeave/proofdao/app/validator"
	"github.com/TrustWeave/proofdao/app/validator/model"
	"github.com/TrustWeave/proofdao/common/log"
	"github.com/TrustWeave/proofdao/common/util"
)

const resultCacheTTL = time.Hour

type ValidateSubmissionReq struct {
	Task       model.Task       `json:"task"`
	Submission model.Submission `json:"submission"`
}

type ValidateSubmissionResp struct {
	model.ValidationResult
	SubmissionID   string        `json:"submissionId,omitempty"`
	ProcessingTime int64         `json:"processingTime"`
	ValidatedAt    util.Datetime `json:"validatedAt"`
}

// ValidateSubmission runs the full pipeline for one submission. Transport
// failures from the inference provider propagate to the caller; the pipeline
// itself never mutates submission status, it only recommends one.
func (svc *ValidatorService) ValidateSubmission(ctx context.Context, req ValidateSubmissionReq) (ValidateSubmissionResp, error) {
	if cached, ok := svc.cachedResult(ctx, req.Submission.ID); ok {
		return cached, nil
	}

	started := time.Now()
	outs, err := svc.runEvaluators(ctx, req.Task, req.Submission)
	if err != nil {
		return ValidateSubmissionResp{}, err
	}

	resp := ValidateSubmissionResp{
		ValidationResult: Combine(outs.Primary, outs.Quality, outs.Fraud, outs.Feedback),
		SubmissionID:     req.Submission.ID,
		ProcessingTime:   util.DurationMillis(time.Since(started)),
		ValidatedAt:      util.Datetime(time.Now()),
	}
	countValidation(ctx)
	// Audit and cache writes must survive a caller disconnect mid-request.
	persistCtx := log.WithNoCancel(ctx)
	log.SafeGo(func() {
		svc.saveValidationRecord(persistCtx, req.Task, req.Submission, outs, resp, false)
		svc.cacheResult(persistCtx, resp)
	}, log.WithName("persist validation"))
	return resp, nil
}

func resultCacheKey(submissionID string) string {
	return "proofdao:validation:" + submissionID
}

// Cache lookups are best effort: idempotent retries reuse the previous
// decision, everything else falls through to the pipeline.
func (svc *ValidatorService) cachedResult(ctx context.Context, submissionID string) (ValidateSubmissionResp, bool) {
	if validator.RedisClient == nil || submissionID == "" {
		return ValidateSubmissionResp{}, false
	}
	data, err := validator.RedisClient.Get(ctx, resultCacheKey(submissionID)).Bytes()
	if err != nil {
		return ValidateSubmissionResp{}, false
	}
	var resp ValidateSubmissionResp
	if err := json.Unmarshal(data, &resp); err != nil {
		validator.Logger().WithContext(ctx).Warn("decode cached validation: ", err.Error())
		return ValidateSubmissionResp{}, false
	}
	return resp, true
}

func (svc *ValidatorService) cacheResult(ctx context.Context, resp ValidateSubmissionResp) {
	if validator.RedisClient == nil || resp.SubmissionID == "" {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := validator.RedisClient.Set(ctx, resultCacheKey(resp.SubmissionID), data, resultCacheTTL).Err(); err != nil {
		validator.Logger().WithContext(ctx).Warn("cache validation result: ", err.Error())
	}
}
