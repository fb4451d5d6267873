package controller

import (
	"edugame_backend/internal/model"
	"edugame_backend/internal/service"
	"edugame_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type XPController struct {
	XPService *service.XPService
}

func NewXPController(xpService *service.XPService) *XPController {
	return &XPController{XPService: xpService}
}

// @Summary Get XP profile
// @Description Total XP, level curve position, skill buckets and streak
// @Tags xp
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/xp/profile [get]
func (c *XPController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.XPService.Profile(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// @Summary Get leaderboard
// @Tags xp
// @Produce json
// @Security BearerAuth
// @Param category query string false "Skill category" Enums(language, culture, softSkills)
// @Param limit query int false "Max entries" default(10)
// @Success 200 {object} util.Response
// @Router /api/xp/leaderboard [get]
func (c *XPController) GetLeaderboard(ctx *gin.Context) {
	limit := 10
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	category := model.SkillCategory(ctx.Query("category"))
	if category != "" && category != model.SkillLanguage && category != model.SkillCulture && category != model.SkillSoftSkills {
		util.BadRequest(ctx, "Unknown category")
		return
	}

	leaderboard, err := c.XPService.Leaderboard(category, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, leaderboard)
}

// @Summary Calculate level for an XP amount
// @Description Utility endpoint exposing the level curve
// @Tags xp
// @Produce json
// @Security BearerAuth
// @Param xp query int true "XP amount"
// @Success 200 {object} util.Response
// @Router /api/xp/calculate-level [get]
func (c *XPController) CalculateLevel(ctx *gin.Context) {
	xp, err := strconv.Atoi(ctx.Query("xp"))
	if err != nil || xp < 0 {
		util.BadRequest(ctx, "xp must be a non-negative integer")
		return
	}

	util.Success(ctx, service.CalculateLevelInfo(xp))
}

type awardXPRequest struct {
	UserID   uint               `json:"userId" binding:"required"`
	Amount   int                `json:"amount" binding:"required,min=1"`
	Category model.GameCategory `json:"category"`
}

// @Summary Award XP to a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param award body awardXPRequest true "Award"
// @Success 200 {object} util.Response
// @Router /api/admin/xp/award [post]
func (c *XPController) AwardXP(ctx *gin.Context) {
	var req awardXPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Category != "" {
		if _, ok := model.NormalizeCategory(req.Category); !ok {
			util.BadRequest(ctx, "Unknown category")
			return
		}
	}

	result, err := c.XPService.AwardXP(req.UserID, req.Amount, req.Category)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
