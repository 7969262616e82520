package app

import (
	"github.com/almasoudi/tutorbridge-backend/internal/http/middleware"
	"github.com/almasoudi/tutorbridge-backend/internal/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, s.Auth),
	}
}
