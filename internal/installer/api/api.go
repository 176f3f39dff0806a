package api

import (
	"github.com/gin-gonic/gin"
	"github.com/kunena/forumadmin/internal/installer/service"
)

type Api struct {
	service *service.VersionService
	router  *gin.Engine
}

func NewApi(svc *service.VersionService, router *gin.Engine) (*Api, error) {
	api := &Api{
		service: svc,
		router:  router,
	}

	api.setupRouters(router)
	return api, nil
}

func (api *Api) setupRouters(router *gin.Engine) {
	api.setupVersionRouters(router)
}
