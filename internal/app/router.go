package app

import (
	"leettrack_backend/internal/config"
	"leettrack_backend/internal/middleware"
	"leettrack_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	router.GET("/api/health", c.health.Check)

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", c.auth.Register)
		auth.POST("/login", c.auth.Login)
		auth.POST("/logout", c.auth.Logout)
		auth.GET("/profile", middleware.AuthMiddleware(cfg), c.auth.Profile)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		questions := authGroup.Group("/questions")
		{
			questions.GET("", c.question.Search)
			questions.POST("", c.question.Create)
			questions.GET("/stats", c.question.Stats)
			questions.GET("/:id", c.question.Get)
			questions.PUT("/:id", c.question.Update)
			questions.DELETE("/:id", c.question.Delete)
		}

		paths := authGroup.Group("/paths")
		{
			paths.GET("", c.path.List)
			paths.POST("", c.path.Create)
			paths.POST("/enroll", c.path.Enroll)
			paths.GET("/enrolled", c.path.Enrolled)
			paths.GET("/reviews", c.path.Reviews)
			paths.GET("/:id", c.path.Get)
			paths.GET("/:id/questions", c.path.Questions)
		}

		daily := authGroup.Group("/daily")
		{
			daily.GET("/today", c.daily.GetToday)
			daily.GET("/more-path", c.daily.GetMorePathQuestions)
			daily.POST("/complete", c.daily.Complete)
			daily.POST("/review", c.daily.ScheduleReview)
			daily.POST("/enroll", c.daily.EnrollDaily)
			daily.POST("/sync", c.daily.SyncDailyChallenge)
		}

		lc := authGroup.Group("/leetcode")
		{
			lc.GET("/daily", c.leetcode.Daily)
			lc.GET("/questions", c.leetcode.Problems)
			lc.GET("/question/:slug", c.leetcode.Question)
			lc.GET("/user/:username", c.leetcode.Profile)
		}

		settings := authGroup.Group("/settings")
		{
			settings.GET("", c.settings.Get)
			settings.PUT("", c.settings.Update)
		}
	}
}
