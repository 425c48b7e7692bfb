package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/strengthscope-backend/internal/domain"
	"github.com/yungbote/strengthscope-backend/internal/http/response"
	"github.com/yungbote/strengthscope-backend/internal/pkg/ctxutil"
	pkgerrors "github.com/yungbote/strengthscope-backend/internal/pkg/errors"
	"github.com/yungbote/strengthscope-backend/internal/services"
)

type RewardsHandler struct {
	rewardsService     services.RewardsService
	progressionService services.ProgressionService
}

func NewRewardsHandler(rewardsService services.RewardsService, progressionService services.ProgressionService) *RewardsHandler {
	return &RewardsHandler{rewardsService: rewardsService, progressionService: progressionService}
}

func (rh *RewardsHandler) AwardMilestone(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	milestone := types.Milestone(c.Param("milestone"))
	award, err := rh.rewardsService.AwardMilestone(c.Request.Context(), id, milestone)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"award": award})
}

func (rh *RewardsHandler) GetMilestoneStatus(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	status, err := rh.rewardsService.GetMilestoneStatus(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"milestones": status})
}

func (rh *RewardsHandler) GetProgress(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
		return
	}
	progress, badges, err := rh.progressionService.GetProgress(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"progress": progress, "badges": badges})
}
