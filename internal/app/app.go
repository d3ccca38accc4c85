package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leettrack_backend/internal/config"
	"leettrack_backend/internal/controller"
	"leettrack_backend/internal/repository"
	"leettrack_backend/internal/service"
	"leettrack_backend/pkg/database"
	"leettrack_backend/pkg/leetcode"
	"leettrack_backend/pkg/logger"
	"leettrack_backend/pkg/monitoring"
	"leettrack_backend/pkg/security"
	"leettrack_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	question *repository.QuestionRepository
	path     *repository.PathRepository
	progress *repository.ProgressRepository
	daily    *repository.DailyRepository
	settings *repository.SettingsRepository
}

type services struct {
	auth     *service.AuthService
	question *service.QuestionService
	path     *service.PathService
	daily    *service.DailyService
	review   *service.ReviewService
	leetcode *service.LeetCodeService
	settings *service.SettingsService
}

type controllers struct {
	auth     *controller.AuthController
	question *controller.QuestionController
	path     *controller.PathController
	daily    *controller.DailyController
	leetcode *controller.LeetCodeController
	settings *controller.SettingsController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		question: repository.NewQuestionRepository(db),
		path:     repository.NewPathRepository(db),
		progress: repository.NewProgressRepository(db),
		daily:    repository.NewDailyRepository(db),
		settings: repository.NewSettingsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.question = service.NewQuestionService(repos.question)
	s.path = service.NewPathService(repos.path, repos.question)

	client := leetcode.NewClient(cfg.LeetCode.Endpoint)
	s.leetcode = service.NewLeetCodeService(client, rdb, cfg.LeetCode.DailyTTL, cfg.LeetCode.QueryTTL)

	s.daily = service.NewDailyService(repos.daily, repos.question, s.leetcode, service.FeedCaps{
		Path:   cfg.Daily.PathCap,
		Review: cfg.Daily.ReviewCap,
		Daily:  cfg.Daily.DailyCap,
	})
	s.review = service.NewReviewService(repos.progress, repos.path, repos.daily, repos.question)
	s.settings = service.NewSettingsService(repos.settings, repos.user)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		question: controller.NewQuestionController(s.question),
		path:     controller.NewPathController(s.path),
		daily:    controller.NewDailyController(s.daily, s.review),
		leetcode: controller.NewLeetCodeController(s.leetcode),
		settings: controller.NewSettingsController(s.settings),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(1000, time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("leettrack-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
