package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/almasoudi/tutorbridge-backend/internal/app"
)

func main() {
	_ = godotenv.Load()

	application, err := app.New()
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
