package controller

import (
	"edugame_backend/internal/model"
	"edugame_backend/internal/service"
	"edugame_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type RewardController struct {
	RewardService *service.RewardService
}

func NewRewardController(rewardService *service.RewardService) *RewardController {
	return &RewardController{RewardService: rewardService}
}

// @Summary List available rewards
// @Description Active, in-stock rewards sorted by XP cost
// @Tags rewards
// @Produce json
// @Security BearerAuth
// @Param category query string false "Reward category"
// @Success 200 {object} util.Response
// @Router /api/rewards [get]
func (c *RewardController) ListRewards(ctx *gin.Context) {
	rewards, err := c.RewardService.ListAvailable(ctx.Query("category"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, rewards)
}

// @Summary Redeem a reward
// @Description Exchanges XP for a reward; returns the redemption with its QR code
// @Tags rewards
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reward ID"
// @Success 201 {object} util.Response
// @Router /api/rewards/{id}/redeem [post]
func (c *RewardController) Redeem(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid reward ID")
		return
	}

	result, err := c.RewardService.Redeem(claims.UserID, uint(id))
	switch err {
	case nil:
	case util.ErrRewardNotFound:
		util.NotFound(ctx)
		return
	case util.ErrRewardNotAvailable, util.ErrRewardExpired, util.ErrInsufficientXP:
		util.BadRequest(ctx, err.Error())
		return
	default:
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// @Summary List own redemptions
// @Tags rewards
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(active, used, expired)
// @Success 200 {object} util.Response
// @Router /api/rewards/my-rewards [get]
func (c *RewardController) MyRewards(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	status := model.UserRewardStatus(ctx.Query("status"))
	rewards, err := c.RewardService.MyRewards(claims.UserID, status)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, rewards)
}

// @Summary Mark a redemption used
// @Tags rewards
// @Produce json
// @Security BearerAuth
// @Param id path int true "User reward ID"
// @Success 200 {object} util.Response
// @Router /api/rewards/user/{id}/use [post]
func (c *RewardController) MarkUsed(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid reward ID")
		return
	}

	ur, err := c.RewardService.MarkUsed(claims.UserID, uint(id))
	switch err {
	case nil:
	case util.ErrUserRewardNotFound:
		util.NotFound(ctx)
		return
	case util.ErrRewardNotActive:
		util.BadRequest(ctx, err.Error())
		return
	default:
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, ur)
}

// @Summary Create a reward
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reward body service.RewardRequest true "Reward definition"
// @Success 201 {object} util.Response
// @Router /api/admin/rewards [post]
func (c *RewardController) CreateReward(ctx *gin.Context) {
	var req service.RewardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reward, err := c.RewardService.CreateReward(&req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, reward)
}

// @Summary Update a reward
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reward ID"
// @Param reward body service.RewardRequest true "Reward definition"
// @Success 200 {object} util.Response
// @Router /api/admin/rewards/{id} [put]
func (c *RewardController) UpdateReward(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid reward ID")
		return
	}

	var req service.RewardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reward, err := c.RewardService.UpdateReward(uint(id), &req)
	if err == util.ErrRewardNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, reward)
}

// @Summary Deactivate a reward
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reward ID"
// @Success 200 {object} util.Response
// @Router /api/admin/rewards/{id} [delete]
func (c *RewardController) DeleteReward(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid reward ID")
		return
	}

	err = c.RewardService.DeleteReward(uint(id))
	if err == util.ErrRewardNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Reward deactivated"})
}

// @Summary List all rewards including inactive
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/rewards [get]
func (c *RewardController) ListAllRewards(ctx *gin.Context) {
	rewards, err := c.RewardService.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, rewards)
}
