package api

import (
	"github.com/gin-gonic/gin"
	"github.com/kunena/forumadmin/internal/avatar/service"
)

// Api serves avatar URLs through the configured provider.
type Api struct {
	provider    service.Provider
	defaultSize int
	router      *gin.Engine
}

func NewApi(provider service.Provider, defaultSize int, router *gin.Engine) (*Api, error) {
	if defaultSize <= 0 {
		defaultSize = 144
	}
	api := &Api{
		provider:    provider,
		defaultSize: defaultSize,
		router:      router,
	}

	api.setupRouters(router)
	return api, nil
}

func (api *Api) setupRouters(router *gin.Engine) {
	api.setupAvatarRouters(router)
}
