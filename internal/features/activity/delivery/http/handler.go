package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FBSocial/subway2-team-activities/internal/common/errors"
	"github.com/FBSocial/subway2-team-activities/internal/common/middleware"
	"github.com/FBSocial/subway2-team-activities/internal/common/validation"
	activityservice "github.com/FBSocial/subway2-team-activities/internal/features/activity/service"
)

// Front-end routing hints for business rejections. The invite page
// switches tabs on these instead of showing an error toast.
const (
	actionShowMismatch   = "show_mismatch"
	actionShowTeamFull   = "show_team_full"
	actionGotoJoinedTeam = "goto_joined_team"
	actionGotoMyTeam     = "goto_my_team"
)

type ActivityHandler struct {
	service activityservice.ActivityService
}

func NewActivityHandler(service activityservice.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	activity := router.Group("/activity")
	{
		activity.GET("/summary", h.getSummary)
		activity.POST("/refresh", middleware.RequireIdentity(), h.refresh)
	}

	invite := router.Group("/invite")
	{
		invite.GET("/:code", h.getInvitedInfo)
		invite.POST("/accept", middleware.RequireIdentity(), h.acceptInvite)
	}

	team := router.Group("/team")
	{
		team.POST("/raise", middleware.RequireIdentity(), h.raiseTeam)
	}

	tasks := router.Group("/tasks")
	{
		tasks.POST("/:id/reward", middleware.RequireIdentity(), h.receiveReward)
	}

	gifts := router.Group("/gifts")
	{
		gifts.GET("/records", middleware.RequireIdentity(), h.getGiftRecords)
		gifts.GET("/:id/cdkey", middleware.RequireIdentity(), h.getCdKey)
	}
}

// @Summary Get the derived activity state
// @Description Returns the full derived state of the campaign for the current viewer: lifecycle flags, tasks, rewards, invite lists and progress.
// @Tags activity
// @Produce json
// @Security BearerToken
// @Success 200 {object} models.DerivedState
// @Failure 502 {object} middleware.ErrorResponse "Upstream unavailable or returned no data"
// @Router /activity/summary [get]
func (h *ActivityHandler) getSummary(c *gin.Context) {
	state, err := h.service.Summary(c.Request.Context(), middleware.Token(c))
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        state,
		"auth_status": middleware.AuthStatus(c),
	})
}

// @Summary Force a fresh snapshot
// @Description Re-fetches the activity from the campaign platform, replacing the cached snapshot for the current viewer.
// @Tags activity
// @Produce json
// @Security BearerToken
// @Success 200 {object} map[string]interface{}
// @Router /activity/refresh [post]
func (h *ActivityHandler) refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context(), middleware.Token(c)); err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refreshed": true})
}

// @Summary Invited page payload
// @Description Public payload for the invited landing page of one invite code. Renders before login.
// @Tags invite
// @Produce json
// @Param code path string true "Invite code"
// @Success 200 {object} fanbook.InvitedInfo
// @Router /invite/{code} [get]
func (h *ActivityHandler) getInvitedInfo(c *gin.Context) {
	code := c.Param("code")
	if err := validation.ValidateInviteCode(code); err != nil {
		middleware.SendError(c, errors.Wrap(err, errors.ErrCodeValidation, "invalid invite code"))
		return
	}

	info, err := h.service.InvitedInfo(c.Request.Context(), code)
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

type acceptInviteRequest struct {
	Code string `json:"code" binding:"required"`
}

// @Summary Join a team by invite code
// @Description Accepts an invite. Business rejections (wrong audience, full team, already joined, own team) come back as 200 with an action hint, not as errors.
// @Tags invite
// @Accept json
// @Produce json
// @Security BearerToken
// @Param input body acceptInviteRequest true "Invite code"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} middleware.ErrorResponse
// @Router /invite/accept [post]
func (h *ActivityHandler) acceptInvite(c *gin.Context) {
	var input acceptInviteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.SendError(c, errors.Wrap(err, errors.ErrCodeValidation, "invalid invite payload"))
		return
	}
	if err := validation.ValidateInviteCode(input.Code); err != nil {
		middleware.SendError(c, errors.Wrap(err, errors.ErrCodeValidation, "invalid invite code"))
		return
	}

	result, err := h.service.AcceptInvite(c.Request.Context(), middleware.Token(c), input.Code)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && appErr.IsBusinessRejection() {
			c.JSON(http.StatusOK, gin.H{
				"joined":  false,
				"action":  actionFor(appErr.Code),
				"code":    appErr.Code,
				"message": appErr.Message,
			})
			return
		}
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"joined": true,
		"result": result,
	})
}

// @Summary Raise the viewer's own team
// @Description Starts team-raising for the current viewer and returns the invite code with a ready-to-share link.
// @Tags team
// @Produce json
// @Security BearerToken
// @Success 200 {object} service.RaiseTeamResult
// @Router /team/raise [post]
func (h *ActivityHandler) raiseTeam(c *gin.Context) {
	result, err := h.service.RaiseTeam(c.Request.Context(), middleware.Token(c))
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Claim a task reward
// @Tags tasks
// @Produce json
// @Security BearerToken
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]interface{}
// @Router /tasks/{id}/reward [post]
func (h *ActivityHandler) receiveReward(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.SendError(c, errors.Wrap(err, errors.ErrCodeValidation, "invalid task id"))
		return
	}
	if err := validation.ValidatePositiveID("task_id", taskID); err != nil {
		middleware.SendError(c, errors.Wrap(err, errors.ErrCodeValidation, "invalid task id"))
		return
	}

	if err := h.service.ReceiveReward(c.Request.Context(), middleware.Token(c), taskID); err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// @Summary List the viewer's gift records
// @Tags gifts
// @Produce json
// @Security BearerToken
// @Success 200 {array} models.GiftRecord
// @Router /gifts/records [get]
func (h *ActivityHandler) getGiftRecords(c *gin.Context) {
	records, err := h.service.GiftRecords(c.Request.Context(), middleware.Token(c))
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// @Summary Redemption key for one gift
// @Tags gifts
// @Produce json
// @Security BearerToken
// @Param id path int true "Gift ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} middleware.ErrorResponse "No record for this gift yet"
// @Router /gifts/{id}/cdkey [get]
func (h *ActivityHandler) getCdKey(c *gin.Context) {
	giftID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.SendError(c, errors.Wrap(err, errors.ErrCodeValidation, "invalid gift id"))
		return
	}
	if err := validation.ValidatePositiveID("gift_id", giftID); err != nil {
		middleware.SendError(c, errors.Wrap(err, errors.ErrCodeValidation, "invalid gift id"))
		return
	}

	key, err := h.service.CdKey(c.Request.Context(), middleware.Token(c), giftID)
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cdkey": key})
}

func (h *ActivityHandler) sendError(c *gin.Context, err error) {
	if appErr, ok := errors.AsAppError(err); ok {
		middleware.SendError(c, appErr)
		return
	}
	middleware.SendError(c, errors.Wrap(err, errors.ErrCodeInternal, "internal error"))
}

func actionFor(code errors.ErrorCode) string {
	switch code {
	case errors.ErrCodeNotEligible:
		return actionShowMismatch
	case errors.ErrCodeTeamFull:
		return actionShowTeamFull
	case errors.ErrCodeAlreadyJoined:
		return actionGotoJoinedTeam
	case errors.ErrCodeOwnTeam:
		return actionGotoMyTeam
	default:
		return ""
	}
}
