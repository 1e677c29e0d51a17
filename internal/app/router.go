package app

import (
	"interview_prep_backend/docs"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/middleware"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/monitoring"
	"interview_prep_backend/pkg/security"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.NoRoute(util.NotFound)

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)

		api.GET("/user-profile/:id", c.analytics.UserProfile)
		api.GET("/user-job-interests-with-scores", c.analytics.InterestScores)
		api.GET("/me/interests", middleware.AuthMiddleware(cfg), c.analytics.MyInterests)
	}

	// 调用模型的接口：可选认证 + 模型调用配额
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	modelRoutes := router.Group("/api")
	modelRoutes.Use(middleware.TryAuthMiddleware(cfg), security.ModelQuota(a.Redis, cfg.RateLimit.ModelCallsPerWindow, window))
	{
		modelRoutes.POST("/generate-subtopics", c.interview.GenerateSubtopics)
		modelRoutes.POST("/validate-subtopics", c.interview.ValidateSubtopics)
		modelRoutes.POST("/refine-subtopics", c.interview.RefineSubtopics)
		modelRoutes.POST("/categorize-subtopics", c.interview.CategorizeSubtopics)
		modelRoutes.POST("/generate-questions", c.interview.GenerateQuestions)
		modelRoutes.POST("/check-response", c.interview.CheckResponse)
	}
}
