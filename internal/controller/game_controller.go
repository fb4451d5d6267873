package controller

import (
	"edugame_backend/internal/model"
	"edugame_backend/internal/repository"
	"edugame_backend/internal/service"
	"edugame_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type GameController struct {
	GameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{GameService: gameService}
}

// @Summary List games
// @Description Lists active games, optionally filtered by category and difficulty
// @Tags games
// @Produce json
// @Security BearerAuth
// @Param category query string false "Game category" Enums(language, culture, soft-skills)
// @Param difficulty query int false "Difficulty 1-5"
// @Success 200 {object} util.Response
// @Router /api/games [get]
func (c *GameController) ListGames(ctx *gin.Context) {
	category := model.GameCategory(ctx.Query("category"))
	difficulty, _ := strconv.Atoi(ctx.Query("difficulty"))

	games, err := c.GameService.ListGames(category, difficulty)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, games)
}

// @Summary Get a game
// @Tags games
// @Produce json
// @Security BearerAuth
// @Param id path int true "Game ID"
// @Success 200 {object} util.Response
// @Router /api/games/{id} [get]
func (c *GameController) GetGame(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid game ID")
		return
	}

	game, err := c.GameService.GetGame(uint(id))
	if err == util.ErrGameNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, game)
}

// @Summary Submit a game session
// @Description Records a play-through and applies XP, streak, weekly and challenge side-effects
// @Tags games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Game ID"
// @Param session body service.SessionRequest true "Session result"
// @Success 201 {object} util.Response
// @Router /api/games/{id}/session [post]
func (c *GameController) SubmitSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid game ID")
		return
	}

	var req service.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GameService.SubmitSession(ctx.Request.Context(), claims.UserID, uint(id), &req)
	if err == util.ErrGameNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// @Summary Get one session
// @Tags games
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/games/sessions/{id} [get]
func (c *GameController) GetSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid session ID")
		return
	}

	session, err := c.GameService.GetSession(uint(id), claims.UserID)
	if err == util.ErrSessionNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// @Summary List own sessions
// @Tags games
// @Produce json
// @Security BearerAuth
// @Param gameId query int false "Filter by game"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param limit query int false "Max results" default(20)
// @Success 200 {object} util.Response
// @Router /api/games/sessions [get]
func (c *GameController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	filter := parseSessionFilter(ctx)
	sessions, err := c.GameService.ListSessions(claims.UserID, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, sessions)
}

func parseSessionFilter(ctx *gin.Context) repository.SessionFilter {
	var filter repository.SessionFilter
	if gameID, err := strconv.Atoi(ctx.Query("gameId")); err == nil {
		filter.GameID = uint(gameID)
	}
	if from, err := time.ParseInLocation(util.DateFormat, ctx.Query("from"), time.Local); err == nil {
		filter.From = from
	}
	if to, err := time.ParseInLocation(util.DateFormat, ctx.Query("to"), time.Local); err == nil {
		// Inclusive end of day.
		filter.To = to.AddDate(0, 0, 1).Add(-time.Second)
	}
	if limit, err := strconv.Atoi(ctx.Query("limit")); err == nil {
		filter.Limit = limit
	}
	return filter
}

// @Summary Create a game
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param game body service.GameRequest true "Game definition"
// @Success 201 {object} util.Response
// @Router /api/admin/games [post]
func (c *GameController) CreateGame(ctx *gin.Context) {
	var req service.GameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	game, err := c.GameService.CreateGame(&req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, game)
}

// @Summary Update a game
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Game ID"
// @Param game body service.GameRequest true "Game definition"
// @Success 200 {object} util.Response
// @Router /api/admin/games/{id} [put]
func (c *GameController) UpdateGame(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid game ID")
		return
	}

	var req service.GameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	game, err := c.GameService.UpdateGame(uint(id), &req)
	if err == util.ErrGameNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, game)
}

// @Summary Deactivate a game
// @Description Soft delete; existing sessions keep referencing the game
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Game ID"
// @Success 200 {object} util.Response
// @Router /api/admin/games/{id} [delete]
func (c *GameController) DeleteGame(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid game ID")
		return
	}

	err = c.GameService.DeleteGame(uint(id))
	if err == util.ErrGameNotFound {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Game deactivated"})
}

// @Summary List all games including inactive
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/games [get]
func (c *GameController) ListAllGames(ctx *gin.Context) {
	games, err := c.GameService.ListAllGames()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, games)
}
