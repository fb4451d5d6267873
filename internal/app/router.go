package app

import (
	"edugame_backend/docs"
	"edugame_backend/internal/config"
	"edugame_backend/internal/middleware"
	"edugame_backend/internal/model"

	"edugame_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerPlayerRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// Browsable without an account; play requires one.
		public.GET("/games", c.game.ListGames)
		public.GET("/games/:id", c.game.GetGame)

		public.GET("/resources", c.resource.ListResources)
		public.GET("/resources/:id", c.resource.GetResource)

		public.GET("/xp/leaderboard", c.xp.GetLeaderboard)
		public.GET("/xp/calculate-level", c.xp.CalculateLevel)
	}
}

func (a *App) registerPlayerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/users/profile", c.auth.GetProfile)
	rg.PUT("/users/profile", c.auth.UpdateProfile)

	rg.POST("/games/:id/session", c.game.SubmitSession)
	rg.GET("/games/sessions", c.game.ListSessions)
	rg.GET("/games/sessions/:id", c.game.GetSession)

	rg.GET("/xp/profile", c.xp.GetProfile)

	rg.GET("/streak", c.streak.GetStreak)
	rg.POST("/streak/update", c.streak.UpdateStreak)
	rg.POST("/streak/reset", c.streak.ResetStreak)

	rg.GET("/challenges/daily", c.challenge.Daily)
	rg.POST("/challenges/:id/complete", c.challenge.Complete)
	rg.GET("/challenges/history", c.challenge.History)
	rg.GET("/challenges/stats", c.challenge.Stats)

	rg.GET("/rewards", c.reward.ListRewards)
	rg.POST("/rewards/:id/redeem", c.reward.Redeem)
	rg.GET("/rewards/my-rewards", c.reward.MyRewards)
	rg.POST("/rewards/user/:id/use", c.reward.MarkUsed)

	rg.GET("/progress", c.progress.Overview)
	rg.GET("/progress/badges", c.progress.Badges)
	rg.GET("/progress/history", c.progress.History)
	rg.GET("/progress/weekly-report", c.progress.WeeklyReport)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/games", c.game.ListAllGames)
		admin.POST("/games", c.game.CreateGame)
		admin.PUT("/games/:id", c.game.UpdateGame)
		admin.DELETE("/games/:id", c.game.DeleteGame)

		admin.GET("/rewards", c.reward.ListAllRewards)
		admin.POST("/rewards", c.reward.CreateReward)
		admin.PUT("/rewards/:id", c.reward.UpdateReward)
		admin.DELETE("/rewards/:id", c.reward.DeleteReward)

		admin.POST("/resources", c.resource.CreateResource)
		admin.PUT("/resources/:id", c.resource.UpdateResource)
		admin.DELETE("/resources/:id", c.resource.DeleteResource)

		admin.POST("/uploads", c.upload.UploadImage)

		admin.POST("/xp/award", c.xp.AwardXP)

		admin.GET("/streak/statistics", c.streak.Statistics)
		admin.POST("/streak/reset-expired", c.streak.ResetExpired)
	}
}
