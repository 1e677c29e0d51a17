package app

import (
	"context"
	"errors"
	"fmt"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/controller"
	"interview_prep_backend/internal/middleware"
	"interview_prep_backend/internal/prompt"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/pkg/database"
	"interview_prep_backend/pkg/logger"
	"interview_prep_backend/pkg/monitoring"
	"interview_prep_backend/pkg/security"
	"interview_prep_backend/pkg/tracing"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	response  *repository.QuestionResponseRepository
	analytics *repository.AnalyticsRepository
}

type services struct {
	model     service.ModelClient
	prompt    *service.PromptService
	interview *service.InterviewService
	auth      *service.AuthService
	analytics *service.AnalyticsService
}

type controllers struct {
	auth      *controller.AuthController
	interview *controller.InterviewController
	analytics *controller.AnalyticsController
	health    *controller.HealthController
}

// configurable 支持热更新模型配置的客户端
type configurable interface {
	UpdateConfig(cfg config.AIConfig)
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// Reload 配置文件变更后调用
func (a *App) Reload(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		response:  repository.NewQuestionResponseRepository(db),
		analytics: repository.NewAnalyticsRepository(db),
	}
}

func initServices(repos *repositories, cfg *config.Config, client service.ModelClient, prompts *prompt.Set) *services {
	s := &services{model: client}
	s.prompt = service.NewPromptService(prompts, client)
	s.interview = service.NewInterviewService(s.prompt, repos.response)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.analytics = service.NewAnalyticsService(repos.user, repos.response, repos.analytics)
	return s
}

func initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		interview: controller.NewInterviewController(s.interview),
		analytics: controller.NewAnalyticsController(s.analytics),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if cfg.RateLimit.MaxRequests > 0 && window > 0 {
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))
	}

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 用已建立的连接和模型客户端组装应用，rdb 可以为 nil
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, client service.ModelClient, prompts *prompt.Set) *App {
	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := initRepositories(db)
	app.services = initServices(repos, cfg, client, prompts)
	controllers := initControllers(app.services, db)

	monitoring.Init()

	router := gin.New()
	router.Use(middleware.RequestLogger())
	app.Router = router
	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(logger.SetLevel)
	if c, ok := client.(configurable); ok {
		app.RegisterConfigCallback(func(newCfg *config.Config) {
			if newCfg.AI.Provider != cfg.AI.Provider {
				logger.Log.Warn("ai.provider changed, restart required to switch provider",
					zap.String("current", cfg.AI.Provider),
					zap.String("configured", newCfg.AI.Provider))
				return
			}
			c.UpdateConfig(newCfg.AI)
			logger.Log.Info("AI settings reloaded", zap.String("model", newCfg.AI.Model))
		})
	}

	return app
}

// NewApp 按配置初始化日志、数据库、Redis、模型客户端和追踪
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("initialize redis: %w", err)
	}

	prompts, err := prompt.LoadFile(cfg.Prompts.Path)
	if err != nil {
		return nil, err
	}

	client, err := service.NewModelClient(ctx, cfg.AI)
	if err != nil {
		return nil, err
	}

	app := New(cfg, db, rdb, client, prompts)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.tracer = tp
	}

	logger.Log.Info("Application initialized",
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("ai_model", cfg.AI.Model),
		zap.Bool("redis", rdb != nil))
	return app, nil
}

// Run 启动 HTTP 服务，ctx 结束后优雅关闭（5 秒超时）
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}

// Close 释放追踪、Redis 和数据库连接
func (a *App) Close() {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
