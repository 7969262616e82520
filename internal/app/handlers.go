package app

import (
	"github.com/almasoudi/tutorbridge-backend/internal/http/handlers"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Lesson    *handlers.LessonHandler
	Video     *handlers.VideoHandler
	File      *handlers.FileHandler
	Review    *handlers.ReviewHandler
	Message   *handlers.MessageHandler
	Dashboard *handlers.DashboardHandler
}

func wireHandlers(s Services) Handlers {
	return Handlers{
		Health:    handlers.NewHealthHandler(),
		Auth:      handlers.NewAuthHandler(s.Auth),
		Lesson:    handlers.NewLessonHandler(s.Lesson),
		Video:     handlers.NewVideoHandler(s.Video),
		File:      handlers.NewFileHandler(s.File),
		Review:    handlers.NewReviewHandler(s.Review),
		Message:   handlers.NewMessageHandler(s.Message),
		Dashboard: handlers.NewDashboardHandler(s.Dashboard),
	}
}
