package api

import (
	"github.com/gin-gonic/gin"

	"github.com/TrustWeave/proofdao/app/validator/service"
)

type (
	GinHandler   = func(c *gin.Context)
	RouterNoAuth = func(g *gin.RouterGroup, api *ValidatorAPI)
)

type ValidatorAPI struct {
	ValidatorService *service.ValidatorService
}

func NewValidatorAPI(svc *service.ValidatorService) *ValidatorAPI {
	return &ValidatorAPI{
		ValidatorService: svc,
	}
}

var (
	routerNoAuth = make([]RouterNoAuth, 0)
)

func InitRouter(r *gin.Engine, api *ValidatorAPI) {
	noAuth := r.Group("")
	for _, f := range routerNoAuth {
		f(noAuth, api)
	}
}
