package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FBSocial/subway2-team-activities/internal/common/logger"
	"github.com/FBSocial/subway2-team-activities/internal/common/middleware"
	activityservice "github.com/FBSocial/subway2-team-activities/internal/features/activity/service"
	"github.com/FBSocial/subway2-team-activities/internal/features/auth"
)

type AuthHandler struct {
	sessions *auth.SessionStore
	activity activityservice.ActivityService
}

func NewAuthHandler(sessions *auth.SessionStore, activity activityservice.ActivityService) *AuthHandler {
	return &AuthHandler{sessions: sessions, activity: activity}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/status", h.getStatus)
		authGroup.POST("/logout", h.logout)
	}
}

// @Summary Current auth classification
// @Description Returns the viewer's auth state: whether a valid session exists and whether the request came through the mini-program host.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/status [get]
func (h *AuthHandler) getStatus(c *gin.Context) {
	status := middleware.AuthStatus(c)
	resp := gin.H{
		"auth_status":        status,
		"requires_login":     auth.RequiresLogin(status),
		"skips_manual_login": auth.SkipsManualLogin(status),
	}
	if id, ok := middleware.CurrentIdentity(c); ok {
		resp["identity"] = id
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Log out
// @Description Full reset: drops the session, forgets the cached identity and clears everything cached for the viewer. The front-end reloads from scratch afterwards.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) logout(c *gin.Context) {
	token := middleware.Token(c)
	if token != "" {
		if err := h.sessions.Clear(c.Request.Context(), token); err != nil {
			logger.Warn().Err(err).Msg("session clear failed")
		}
		h.activity.ClearViewer(c.Request.Context(), token)
	}

	c.JSON(http.StatusOK, gin.H{
		"logged_out": true,
		"reload":     true,
	})
}
