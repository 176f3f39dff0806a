package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kunena/forumadmin/internal/avatar/model"
	"github.com/kunena/forumadmin/internal/httputil"
	"github.com/rs/zerolog/log"
)

func (api *Api) setupAvatarRouters(router *gin.Engine) {
	router.GET("/v1/avatars/users/:userId", api.GetAvatarURL)
	router.POST("/v1/avatars/preload", api.PreloadAvatars)
	router.GET("/v1/avatars/edit-url", api.GetEditURL)
}

// GetAvatarURL GET /v1/avatars/users/:userId?width=&height=
// A missing width uses the default size; a missing height follows the width.
func (api *Api) GetAvatarURL(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID < 0 {
		httputil.SendErrorResponse(c, http.StatusBadRequest, "INVALID_PARAMETER", "userId must be a non-negative integer")
		return
	}
	width, ok := parseSize(c, "width")
	if !ok {
		return
	}
	height, ok := parseSize(c, "height")
	if !ok {
		return
	}
	if width == 0 {
		width = api.defaultSize
	}
	if height == 0 {
		height = width
	}

	url := api.provider.URL(c.Request.Context(), model.User{ID: userID}, width, height)
	c.JSON(http.StatusOK, model.AvatarResponse{UserID: userID, URL: url, Width: width, Height: height})
}

// PreloadAvatars POST /v1/avatars/preload
func (api *Api) PreloadAvatars(c *gin.Context) {
	var req model.PreloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.SendErrorResponse(c, http.StatusBadRequest, "INVALID_PARAMETER", "invalid JSON")
		return
	}
	api.provider.Load(c.Request.Context(), req.UserIDs)
	c.JSON(http.StatusOK, gin.H{"ok": true, "requested": len(req.UserIDs)})
}

// GetEditURL GET /v1/avatars/edit-url
func (api *Api) GetEditURL(c *gin.Context) {
	u, err := api.provider.EditURL(c.Request.Context())
	if err != nil {
		if errors.Is(err, model.ErrProfileServiceUnavailable) {
			httputil.SendErrorResponse(c, http.StatusNotFound, "EDIT_URL_UNAVAILABLE", err.Error())
			return
		}
		log.Error().Err(err).Str("backend", api.provider.Name()).Msg("failed to get avatar edit url")
		httputil.SendErrorResponse(c, http.StatusBadGateway, "PROFILE_SERVICE_ERROR", "failed to get edit url")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": u})
}

func parseSize(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		httputil.SendErrorResponse(c, http.StatusBadRequest, "INVALID_PARAMETER", name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}
