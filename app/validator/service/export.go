package service

import (
	"context"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/TrustWeave/proofdao/app/validator"
	"github.com/TrustWeave/proofdao/app/validator/model"
	"github.com/TrustWeave/proofdao/common/util"
	"github.com/TrustWeave/proofdao/config"
)

const reportShareExpiry = 24 * time.Hour

type ExportTaskReportReq struct {
	TaskID string `json:"taskId"`
}

type ExportTaskReportResp struct {
	FileName string `json:"fileName"`
	ShareURL string `json:"shareUrl"`
	Records  int    `json:"records"`
}

// ExportTaskReport builds an xlsx of a task's validation records, uploads it
// to the report bucket and returns a time-limited share link.
func (svc *ValidatorService) ExportTaskReport(ctx context.Context, req ExportTaskReportReq) (ExportTaskReportResp, error) {
	if validator.MinIOClient == nil {
		return ExportTaskReportResp{}, ErrNoStorage
	}
	records, err := svc.taskValidations(ctx, req.TaskID)
	if err != nil {
		return ExportTaskReportResp{}, err
	}

	columns := []string{"Submission", "Contributor", "Score", "Recommendation", "Approve",
		"Confidence", "Flags", "Degraded", "Processing ms", "Validated at"}
	excelBuf, err := util.MakeExcelFromData(
		util.Map(records, recordToRow),
		columns,
	).WriteToBuffer()
	if err != nil {
		validator.Logger().WithContext(ctx).Error("convert excelize.File to buffer: ", err.Error())
		return ExportTaskReportResp{}, err
	}

	filename := req.TaskID + "-" + util.GetExcelFileName("validations")
	bucket := config.ExtConfig.MinIO.ReportBucket
	if _, err := validator.MinIOClient.PutObject(ctx, bucket, filename, excelBuf, -1, minio.PutObjectOptions{}); err != nil {
		validator.Logger().WithContext(ctx).Error("minio save file: ", err.Error())
		return ExportTaskReportResp{}, err
	}
	share, err := validator.MinIOClient.PresignedGetObject(ctx, bucket, filename, reportShareExpiry, url.Values{})
	if err != nil {
		validator.Logger().WithContext(ctx).Error("minio presign file: ", err.Error())
		return ExportTaskReportResp{}, err
	}

	return ExportTaskReportResp{
		FileName: filename,
		ShareURL: share.String(),
		Records:  len(records),
	}, nil
}

func recordToRow(record model.ValidationRecord) []interface{} {
	return []interface{}{
		record.SubmissionID,
		record.Contributor,
		record.Result.Score,
		record.Result.Recommendation,
		record.Result.ShouldApprove,
		record.Result.Confidence,
		len(record.Result.FlaggedIssues),
		record.Degraded,
		record.ProcessingMs,
		record.ValidatedAt.Time().Format(util.TimeLayoutDatetime),
	}
}
