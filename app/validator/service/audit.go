package service

import (
	"context"
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TrustWeave/proofdao/app/validator"
	"github.com/TrustWeave/proofdao/app/validator/model"
	"github.com/TrustWeave/proofdao/common/log"
	"github.com/TrustWeave/proofdao/common/util"
)

// saveValidationRecord persists the audit trail of one pipeline run. Audit
// writes are best effort: a storage error is logged and never fails the
// validation itself.
func (svc *ValidatorService) saveValidationRecord(ctx context.Context, task model.Task, submission model.Submission, outs evaluatorOutputs, resp ValidateSubmissionResp, degraded bool) {
	if svc.CollectionValidation == nil {
		return
	}
	record := model.ValidationRecord{
		ID:           primitive.NewObjectID(),
		TaskID:       task.ID,
		SubmissionID: submission.ID,
		Contributor:  submission.Contributor,
		Result:       resp.ValidationResult,
		Degraded:     degraded,
		ParsedAll:    outs.allParsed(),
		ProcessingMs: resp.ProcessingTime,
		ValidatedAt:  resp.ValidatedAt,
	}
	if !degraded {
		raw, err := json.Marshal(map[string]string{
			"primary":  outs.rawPrimary,
			"quality":  outs.rawQuality,
			"fraud":    outs.rawFraud,
			"feedback": outs.rawFeedback,
		})
		if err == nil {
			record.RawResponses = util.GzipJSON(raw)
		}
	}
	if _, err := svc.CollectionValidation.InsertOne(ctx, record); err != nil {
		validator.Logger().WithContext(ctx).Error("save validation record: ", err.Error())
	}
}

func (svc *ValidatorService) saveDegradedRecord(ctx context.Context, task model.Task, submission model.Submission, resp ValidateSubmissionResp) {
	svc.saveValidationRecord(ctx, task, submission, evaluatorOutputs{}, resp, true)
}

type SearchValidationsReq struct {
	TaskID      string `json:"taskId"`
	Contributor string `json:"contributor"`

	Pagination
}

func (svc *ValidatorService) SearchValidations(ctx context.Context, req SearchValidationsReq) ([]model.ValidationRecord, int, error) {
	if svc.CollectionValidation == nil {
		return nil, 0, ErrDatabase
	}
	filter := bson.M{}
	if req.TaskID != "" {
		filter["taskId"] = req.TaskID
	}
	if req.Contributor != "" {
		filter["contributor"] = req.Contributor
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if req.PageIndex <= 0 {
		req.PageIndex = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(req.PageSize)).
		SetSkip(int64((req.PageIndex - 1) * req.PageSize))
	cursor, err := svc.CollectionValidation.Find(ctx, filter, opts)
	if err != nil {
		log.Logger().WithContext(ctx).Error(err.Error())
		return nil, 0, err
	}

	var records []model.ValidationRecord
	if err := cursor.All(ctx, &records); err != nil {
		log.Logger().WithContext(ctx).Error(err.Error())
		return nil, 0, err
	}

	count, err := svc.CollectionValidation.CountDocuments(ctx, filter)
	if err != nil {
		log.Logger().WithContext(ctx).Error(err.Error())
		return nil, 0, err
	}
	return records, int(count), nil
}

func (svc *ValidatorService) taskValidations(ctx context.Context, taskID string) ([]model.ValidationRecord, error) {
	if svc.CollectionValidation == nil {
		return nil, ErrDatabase
	}
	cursor, err := svc.CollectionValidation.Find(ctx, bson.M{"taskId": taskID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		log.Logger().WithContext(ctx).Error(err.Error())
		return nil, err
	}
	var records []model.ValidationRecord
	if err := cursor.All(ctx, &records); err != nil {
		log.Logger().WithContext(ctx).Error(err.Error())
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoDoc
	}
	return records, nil
}
