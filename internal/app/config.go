package app

import (
	"time"

	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/utils"
)

type Config struct {
	Port         string
	JWTSecretKey string
	AccessTTL    time.Duration
	FrontendURL  string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "3001", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 86400, log)
	frontendURL := utils.GetEnv("FRONTEND_URL", "http://localhost:3000", log)
	return Config{
		Port:         port,
		JWTSecretKey: jwtSecretKey,
		AccessTTL:    time.Duration(accessTTLSeconds) * time.Second,
		FrontendURL:  frontendURL,
	}
}
