package controller

import (
	"edugame_backend/internal/service"
	"edugame_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// @Summary Progress overview
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/progress [get]
func (c *ProgressController) Overview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.ProgressService.Overview(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, overview)
}

// @Summary Badges with progress
// @Description Every active badge with the caller's progress towards it
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/progress/badges [get]
func (c *ProgressController) Badges(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	badges, err := c.ProgressService.BadgesWithProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, badges)
}

// @Summary Game history
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param gameId query int false "Filter by game"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param limit query int false "Max results" default(20)
// @Success 200 {object} util.Response
// @Router /api/progress/history [get]
func (c *ProgressController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	history, err := c.ProgressService.GameHistory(claims.UserID, parseSessionFilter(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, history)
}

// @Summary Weekly report
// @Description Last seven days of play with AI (or fallback) insights
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/progress/weekly-report [get]
func (c *ProgressController) WeeklyReport(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	report, err := c.ProgressService.GetWeeklyReport(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, report)
}
