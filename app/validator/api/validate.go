package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"

	"github.com/TrustWeave/proofdao/app/validator/service"
	"github.com/TrustWeave/proofdao/common/log"
)

func init() {
	routerNoAuth = append(routerNoAuth, validateRouter())
}

func validateRouter() RouterNoAuth {
	return func(g *gin.RouterGroup, api *ValidatorAPI) {
		g.POST("/api/v1/validator/v/submission", api.ValidateSubmission())
		g.POST("/api/v1/validator/v/batch", api.ValidateBatch())
		g.POST("/api/v1/validator/v/search", api.SearchValidations())
		g.POST("/api/v1/validator/v/export", api.ExportTaskReport())
	}
}

func (api *ValidatorAPI) ValidateSubmission() GinHandler {
	return func(c *gin.Context) {
		var req service.ValidateSubmissionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Logger().WithContext(c.Request.Context()).Error(err.Error())
			response.Error(c, http.StatusBadRequest, err, "invalid request body")
			return
		}
		if req.Task.ID == "" || req.Submission.ID == "" {
			response.Error(c, http.StatusBadRequest, nil, "task and submission are required")
			return
		}
		resp, err := api.ValidatorService.ValidateSubmission(c.Request.Context(), req)
		if err != nil {
			writeValidationError(c, err)
			return
		}
		response.OK(c, resp, "")
	}
}

func (api *ValidatorAPI) ValidateBatch() GinHandler {
	return func(c *gin.Context) {
		var req service.ValidateBatchReq
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Logger().WithContext(c.Request.Context()).Error(err.Error())
			response.Error(c, http.StatusBadRequest, err, "invalid request body")
			return
		}
		if req.DAOID == "" || len(req.Submissions) == 0 || len(req.Tasks) == 0 {
			response.Error(c, http.StatusBadRequest, nil, "daoId, tasks and submissions are required")
			return
		}
		resp, err := api.ValidatorService.ValidateBatch(c.Request.Context(), req)
		if err != nil {
			writeValidationError(c, err)
			return
		}
		response.OK(c, resp, "")
	}
}

func (api *ValidatorAPI) SearchValidations() GinHandler {
	return func(c *gin.Context) {
		var req service.SearchValidationsReq
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Logger().WithContext(c.Request.Context()).Error(err.Error())
			response.Error(c, http.StatusBadRequest, err, "invalid request body")
			return
		}
		records, total, err := api.ValidatorService.SearchValidations(c.Request.Context(), req)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, err, "")
			return
		}
		response.PageOK(c, records, total, req.PageIndex, req.PageSize, "")
	}
}

func (api *ValidatorAPI) ExportTaskReport() GinHandler {
	return func(c *gin.Context) {
		var req service.ExportTaskReportReq
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Logger().WithContext(c.Request.Context()).Error(err.Error())
			response.Error(c, http.StatusBadRequest, err, "invalid request body")
			return
		}
		if req.TaskID == "" {
			response.Error(c, http.StatusBadRequest, nil, "taskId is required")
			return
		}
		resp, err := api.ValidatorService.ExportTaskReport(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, service.ErrNoDoc) {
				response.Error(c, http.StatusBadRequest, err, "no validations recorded for task")
				return
			}
			response.Error(c, http.StatusInternalServerError, err, "")
			return
		}
		response.OK(c, resp, "")
	}
}

func writeValidationError(c *gin.Context, err error) {
	log.Logger().WithContext(c.Request.Context()).Error(err.Error())
	if errors.Is(err, service.ErrNotConfigured) {
		response.Error(c, http.StatusServiceUnavailable, err, "validation service not configured")
		return
	}
	response.Error(c, http.StatusInternalServerError, err, "")
}
