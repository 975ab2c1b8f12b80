package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"

	"github.com/TrustWeave/proofdao/app/validator/model"
	"github.com/TrustWeave/proofdao/common/log"
)

func init() {
	routerNoAuth = append(routerNoAuth, suggestRouter())
}

func suggestRouter() RouterNoAuth {
	return func(g *gin.RouterGroup, api *ValidatorAPI) {
		g.POST("/api/v1/validator/t/suggestions", api.SuggestTaskImprovements())
	}
}

type suggestReq struct {
	Task model.Task `json:"task"`
}

type suggestResp struct {
	Suggestions []string `json:"suggestions"`
}

func (api *ValidatorAPI) SuggestTaskImprovements() GinHandler {
	return func(c *gin.Context) {
		var req suggestReq
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Logger().WithContext(c.Request.Context()).Error(err.Error())
			response.Error(c, http.StatusBadRequest, err, "invalid request body")
			return
		}
		if req.Task.ID == "" {
			response.Error(c, http.StatusBadRequest, nil, "task is required")
			return
		}
		suggestions, err := api.ValidatorService.SuggestTaskImprovements(c.Request.Context(), req.Task)
		if err != nil {
			writeValidationError(c, err)
			return
		}
		response.OK(c, suggestResp{Suggestions: suggestions}, "")
	}
}
