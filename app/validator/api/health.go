package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-admin-team/go-admin-core/sdk/pkg/response"
)

func init() {
	routerNoAuth = append(routerNoAuth, healthRouter())
}

func healthRouter() RouterNoAuth {
	return func(g *gin.RouterGroup, api *ValidatorAPI) {
		g.GET("/api/v1/validator/health", api.Health())
	}
}

func (api *ValidatorAPI) Health() GinHandler {
	return func(c *gin.Context) {
		response.OK(c, api.ValidatorService.Health(c.Request.Context()), "")
	}
}
