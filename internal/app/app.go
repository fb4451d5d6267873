package app

import (
	"context"
	"edugame_backend/internal/config"
	"edugame_backend/internal/controller"
	"edugame_backend/internal/repository"
	"edugame_backend/internal/service"
	"edugame_backend/pkg/database"
	"edugame_backend/pkg/logger"
	"edugame_backend/pkg/monitoring"
	"edugame_backend/pkg/security"
	"edugame_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type App struct {
	Config    *config.Config
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client
	services  *services
	scheduler *maintenanceScheduler
	tracer    *sdktrace.TracerProvider
}

type repositories struct {
	user      *repository.UserRepository
	game      *repository.GameRepository
	session   *repository.SessionRepository
	progress  *repository.ProgressRepository
	badge     *repository.BadgeRepository
	challenge *repository.ChallengeRepository
	reward    *repository.RewardRepository
	resource  *repository.ResourceRepository
}

type services struct {
	storage   *service.StorageService
	feedback  *service.FeedbackService
	xp        *service.XPService
	streak    *service.StreakService
	challenge *service.ChallengeService
	game      *service.GameService
	reward    *service.RewardService
	progress  *service.ProgressService
	auth      *service.AuthService
	user      *service.UserService
	resource  *service.ResourceService
}

type controllers struct {
	auth      *controller.AuthController
	game      *controller.GameController
	xp        *controller.XPController
	streak    *controller.StreakController
	challenge *controller.ChallengeController
	reward    *controller.RewardController
	progress  *controller.ProgressController
	resource  *controller.ResourceController
	upload    *controller.UploadController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		game:      repository.NewGameRepository(db),
		session:   repository.NewSessionRepository(db),
		progress:  repository.NewProgressRepository(db),
		badge:     repository.NewBadgeRepository(db),
		challenge: repository.NewChallengeRepository(db),
		reward:    repository.NewRewardRepository(db),
		resource:  repository.NewResourceRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.feedback = service.NewFeedbackService(&cfg.AI)
	s.xp = service.NewXPService(repos.progress, repos.badge, repos.user, rdb, db)
	s.streak = service.NewStreakService(repos.progress, repos.user)
	s.challenge = service.NewChallengeService(repos.challenge, s.xp)
	s.game = service.NewGameService(
		repos.game,
		repos.session,
		repos.progress,
		repos.user,
		s.xp,
		s.streak,
		s.challenge,
		s.feedback,
	)
	s.reward = service.NewRewardService(repos.reward, s.xp, db)
	s.progress = service.NewProgressService(repos.progress, repos.badge, repos.session, s.feedback)
	s.auth = service.NewAuthService(repos.user, repos.progress, cfg)
	s.user = service.NewUserService(repos.user)
	s.resource = service.NewResourceService(repos.resource)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth, s.user),
		game:      controller.NewGameController(s.game),
		xp:        controller.NewXPController(s.xp),
		streak:    controller.NewStreakController(s.streak),
		challenge: controller.NewChallengeController(s.challenge),
		reward:    controller.NewRewardController(s.reward),
		progress:  controller.NewProgressController(s.progress),
		resource:  controller.NewResourceController(s.resource),
		upload:    controller.NewUploadController(s.storage),
		health:    controller.NewHealthController(db, s.feedback),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Release builds only migrate when asked, debug always does.
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
			log.Fatalf("Failed to migrate database: %v", err)
		}
		database.Seed(db)
		logger.Log.Info("Database migration completed")
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("edugame-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	if cfg.Scheduler.Enabled {
		if err := app.startScheduler(repos, services); err != nil {
			logger.Log.Error("Failed to start maintenance scheduler", zap.Error(err))
		}
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
