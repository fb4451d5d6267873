package controller

import (
	"edugame_backend/internal/service"
	"edugame_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StreakController struct {
	StreakService *service.StreakService
}

func NewStreakController(streakService *service.StreakService) *StreakController {
	return &StreakController{StreakService: streakService}
}

// @Summary Get streak info
// @Tags streak
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/streak [get]
func (c *StreakController) GetStreak(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	info, err := c.StreakService.GetStreakInfo(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, info)
}

// @Summary Record activity for today
// @Description Extends, keeps or restarts the daily streak
// @Tags streak
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/streak/update [post]
func (c *StreakController) UpdateStreak(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.StreakService.UpdateStreak(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary Reset own streak
// @Tags streak
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/streak/reset [post]
func (c *StreakController) ResetStreak(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.StreakService.ResetStreak(claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Streak reset"})
}

// @Summary Streak statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/streak/statistics [get]
func (c *StreakController) Statistics(ctx *gin.Context) {
	stats, err := c.StreakService.Statistics()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary Reset expired streaks
// @Description Zeroes every streak whose last activity is older than yesterday
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/streak/reset-expired [post]
func (c *StreakController) ResetExpired(ctx *gin.Context) {
	count, err := c.StreakService.ResetExpiredStreaks()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"reset": count})
}
