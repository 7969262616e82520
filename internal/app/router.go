package app

import (
	"github.com/gin-gonic/gin"

	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:              log,
		FrontendURL:      cfg.FrontendURL,
		AuthMiddleware:   m.Auth,
		HealthHandler:    h.Health,
		AuthHandler:      h.Auth,
		LessonHandler:    h.Lesson,
		VideoHandler:     h.Video,
		FileHandler:      h.File,
		ReviewHandler:    h.Review,
		MessageHandler:   h.Message,
		DashboardHandler: h.Dashboard,
	})
}
