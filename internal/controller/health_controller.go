package controller

import (
	"edugame_backend/internal/service"
	"edugame_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB       *gorm.DB
	Feedback *service.FeedbackService
}

func NewHealthController(db *gorm.DB, feedback *service.FeedbackService) *HealthController {
	return &HealthController{DB: db, Feedback: feedback}
}

// @Summary Health check
// @Description Reports database and AI microservice status
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	// AI being down is informational only; the fallback keeps gameplay alive.
	aiStatus := "up"
	if err := c.Feedback.Health(ctx.Request.Context()); err != nil {
		aiStatus = "down"
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database":   "up",
			"ai_service": aiStatus,
		},
	})
}
