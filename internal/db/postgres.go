package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
	"github.com/almasoudi/tutorbridge-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "tutorbridge", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrate(s.db); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	for _, stmt := range []string{
		`ALTER TABLE "videos"
		 ADD CONSTRAINT "fk_videos_lesson_id"
		 FOREIGN KEY ("lesson_id")
		 REFERENCES "lessons"("id")
		 ON DELETE CASCADE`,
		`ALTER TABLE "files"
		 ADD CONSTRAINT "fk_files_lesson_id"
		 FOREIGN KEY ("lesson_id")
		 REFERENCES "lessons"("id")
		 ON DELETE CASCADE`,
	} {
		if err := s.db.Exec(stmt).Error; err != nil {
			if isDuplicateConstraint(err) {
				continue
			}
			return fmt.Errorf("failed to add foreign key: %w", err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

// AutoMigrate migrates the full table set. Shared with the sqlite-backed
// test databases.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&types.User{},
		&types.Lesson{},
		&types.Video{},
		&types.File{},
		&types.Review{},
		&types.Message{},
		&types.Settings{},
	)
}

func isDuplicateConstraint(err error) bool {
	if err == nil {
		return false
	}
	// 42710: duplicate_object, raised when the constraint already exists.
	return strings.Contains(err.Error(), "42710") || strings.Contains(err.Error(), "already exists")
}
