package app

import (
	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/services"
)

type Services struct {
	Lesson    services.LessonService
	Video     services.VideoService
	File      services.FileService
	Review    services.ReviewService
	Message   services.MessageService
	Auth      services.AuthService
	Dashboard services.DashboardService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	return Services{
		Lesson:    services.NewLessonService(db, log, r.Lesson, r.Video, r.File),
		Video:     services.NewVideoService(db, log, r.Video, r.Lesson),
		File:      services.NewFileService(db, log, r.File, r.Lesson),
		Review:    services.NewReviewService(db, log, r.Review),
		Message:   services.NewMessageService(db, log, r.Message),
		Auth:      services.NewAuthService(log, r.User, cfg.JWTSecretKey, cfg.AccessTTL),
		Dashboard: services.NewDashboardService(log, r.Lesson, r.Video, r.File, r.Review, r.Message, r.Settings),
	}
}
