package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/almasoudi/tutorbridge-backend/internal/http/handlers"
	"github.com/almasoudi/tutorbridge-backend/internal/http/middleware"
	"github.com/almasoudi/tutorbridge-backend/internal/logger"
)

type RouterConfig struct {
	Log              *logger.Logger
	FrontendURL      string
	AuthMiddleware   *middleware.AuthMiddleware
	HealthHandler    *handlers.HealthHandler
	AuthHandler      *handlers.AuthHandler
	LessonHandler    *handlers.LessonHandler
	VideoHandler     *handlers.VideoHandler
	FileHandler      *handlers.FileHandler
	ReviewHandler    *handlers.ReviewHandler
	MessageHandler   *handlers.MessageHandler
	DashboardHandler *handlers.DashboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS(cfg.FrontendURL))

	api := router.Group("/api")

	api.GET("/health", cfg.HealthHandler.HealthCheck)

	auth := api.Group("/auth")
	{
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/logout", cfg.AuthHandler.Logout)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Me)
		auth.PUT("/change-password", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.ChangePassword)
	}

	lessons := api.Group("/lessons")
	{
		lessons.GET("", cfg.LessonHandler.List)
		lessons.POST("", cfg.LessonHandler.Create)
		lessons.GET("/:id", cfg.LessonHandler.Get)
		lessons.PUT("/:id", cfg.LessonHandler.Update)
		lessons.DELETE("/:id", cfg.LessonHandler.Delete)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", cfg.VideoHandler.List)
		videos.POST("", cfg.VideoHandler.Create)
		videos.GET("/:id", cfg.VideoHandler.Get)
		videos.PUT("/:id", cfg.VideoHandler.Update)
		videos.DELETE("/:id", cfg.VideoHandler.Delete)
		videos.PUT("/:id/view", cfg.VideoHandler.RecordView)
	}

	files := api.Group("/files")
	{
		files.GET("", cfg.FileHandler.List)
		files.POST("", cfg.FileHandler.Create)
		files.GET("/:id", cfg.FileHandler.Get)
		files.PUT("/:id", cfg.FileHandler.Update)
		files.DELETE("/:id", cfg.FileHandler.Delete)
		files.PUT("/:id/download", cfg.FileHandler.RecordDownload)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("", cfg.ReviewHandler.List)
		reviews.POST("", cfg.ReviewHandler.Create)
		reviews.GET("/:id", cfg.ReviewHandler.Get)
		reviews.PUT("/:id", cfg.ReviewHandler.Update)
		reviews.DELETE("/:id", cfg.ReviewHandler.Delete)
	}

	messages := api.Group("/messages")
	{
		messages.GET("", cfg.MessageHandler.List)
		messages.POST("", cfg.MessageHandler.Create)
		messages.GET("/:id", cfg.MessageHandler.Get)
		messages.PUT("/:id", cfg.MessageHandler.Update)
		messages.DELETE("/:id", cfg.MessageHandler.Delete)
		messages.PUT("/:id/read", cfg.MessageHandler.MarkRead)
	}

	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/stats", cfg.DashboardHandler.Stats)
		dashboard.GET("/recent-messages", cfg.DashboardHandler.RecentMessages)
		dashboard.GET("/recent-reviews", cfg.DashboardHandler.RecentReviews)
		dashboard.GET("/popular-lessons", cfg.DashboardHandler.PopularLessons)
		dashboard.GET("/popular-videos", cfg.DashboardHandler.PopularVideos)
		dashboard.GET("/analytics", cfg.DashboardHandler.Analytics)
		dashboard.GET("/settings", cfg.DashboardHandler.GetSettings)
		dashboard.PUT("/settings", cfg.DashboardHandler.UpdateSettings)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return router
}
