package controller

import (
	"edugame_backend/internal/service"
	"edugame_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
}

func NewChallengeController(challengeService *service.ChallengeService) *ChallengeController {
	return &ChallengeController{ChallengeService: challengeService}
}

// @Summary Get today's challenge
// @Description Returns the shared daily challenge with the caller's progress, creating both lazily
// @Tags challenges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/challenges/daily [get]
func (c *ChallengeController) Daily(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	uc, err := c.ChallengeService.DailyChallenge(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, uc)
}

// @Summary Complete a challenge
// @Description Idempotent: an already completed challenge is returned unchanged
// @Tags challenges
// @Produce json
// @Security BearerAuth
// @Param id path int true "Challenge ID"
// @Success 200 {object} util.Response
// @Router /api/challenges/{id}/complete [post]
func (c *ChallengeController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid challenge ID")
		return
	}

	uc, err := c.ChallengeService.Complete(claims.UserID, uint(id))
	switch err {
	case nil:
	case util.ErrChallengeNotFound:
		util.NotFound(ctx)
		return
	case util.ErrChallengeNotActive, util.ErrChallengeNotFulfilled:
		util.BadRequest(ctx, err.Error())
		return
	default:
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, uc)
}

// @Summary Challenge history
// @Tags challenges
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries" default(30)
// @Success 200 {object} util.Response
// @Router /api/challenges/history [get]
func (c *ChallengeController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.Query("limit"))
	history, err := c.ChallengeService.History(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, history)
}

// @Summary Challenge statistics
// @Tags challenges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/challenges/stats [get]
func (c *ChallengeController) Stats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.ChallengeService.Stats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
