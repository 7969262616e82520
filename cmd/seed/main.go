package main

import (
	"flag"
	stdlog "log"
	"os"

	"github.com/joho/godotenv"

	"github.com/almasoudi/tutorbridge-backend/internal/db"
	"github.com/almasoudi/tutorbridge-backend/internal/logger"
)

func main() {
	_ = godotenv.Load()

	path := flag.String("file", "seed.yaml", "path to the YAML seed fixture")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		stdlog.Fatalf("init logger: %v", err)
	}
	defer log.Sync()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("init postgres", "error", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Fatal("postgres automigrate", "error", err)
	}

	if err := db.Seed(pg.DB(), log, *path); err != nil {
		log.Fatal("seed failed", "error", err)
	}
	log.Info("Seed complete", "file", *path)
}
