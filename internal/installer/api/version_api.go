package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kunena/forumadmin/internal/httputil"
	"github.com/rs/zerolog/log"
)

func (api *Api) setupVersionRouters(router *gin.Engine) {
	router.GET("/v1/admin/version", api.GetVersionStatus)
	router.GET("/v1/admin/version/warning", api.GetVersionWarning)
	router.GET("/v1/admin/version/check", api.CheckVersion)
	router.GET("/v1/admin/version/db", api.GetDBVersion)
}

// GetVersionStatus GET /v1/admin/version
func (api *Api) GetVersionStatus(c *gin.Context) {
	status, err := api.service.Status(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get version status")
		httputil.SendErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to read installed version")
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetVersionWarning GET /v1/admin/version/warning?msg=KEY
func (api *Api) GetVersionWarning(c *gin.Context) {
	msg := c.Query("msg")
	c.JSON(http.StatusOK, gin.H{
		"stability": api.service.Stability(),
		"warning":   api.service.VersionWarning(msg),
	})
}

// CheckVersion GET /v1/admin/version/check
func (api *Api) CheckVersion(c *gin.Context) {
	needsCheck, err := api.service.CheckVersion(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to check version")
		httputil.SendErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to read installed version")
		return
	}
	c.JSON(http.StatusOK, gin.H{"needsCheck": needsCheck})
}

// GetDBVersion GET /v1/admin/version/db?prefix=kunena_
func (api *Api) GetDBVersion(c *gin.Context) {
	record, err := api.service.DBVersion(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		log.Error().Err(err).Msg("failed to get db version")
		httputil.SendErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to read installed version")
		return
	}
	c.JSON(http.StatusOK, record)
}
