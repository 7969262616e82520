package app

import (
	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/repos"
)

type Repos struct {
	Lesson   repos.LessonRepo
	Video    repos.VideoRepo
	File     repos.FileRepo
	Review   repos.ReviewRepo
	Message  repos.MessageRepo
	User     repos.UserRepo
	Settings repos.SettingsRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Lesson:   repos.NewLessonRepo(db, log),
		Video:    repos.NewVideoRepo(db, log),
		File:     repos.NewFileRepo(db, log),
		Review:   repos.NewReviewRepo(db, log),
		Message:  repos.NewMessageRepo(db, log),
		User:     repos.NewUserRepo(db, log),
		Settings: repos.NewSettingsRepo(db, log),
	}
}
