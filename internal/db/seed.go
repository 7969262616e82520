package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/repos"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

// SeedFile is the YAML shape consumed by cmd/seed.
type SeedFile struct {
	Admin struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Subject  string `yaml:"subject"`
	} `yaml:"admin"`
	Settings struct {
		PrimaryColor    string `yaml:"primary_color"`
		SecondaryColor  string `yaml:"secondary_color"`
		HeroTitle       string `yaml:"hero_title"`
		HeroDescription string `yaml:"hero_description"`
		TeacherName     string `yaml:"teacher_name"`
		TeacherSubject  string `yaml:"teacher_subject"`
		TeacherPhoto    string `yaml:"teacher_photo"`
	} `yaml:"settings"`
	Lessons []struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Level       string `yaml:"level"`
		Thumbnail   string `yaml:"thumbnail"`
	} `yaml:"lessons"`
}

// Seed loads the fixture and fills empty tables. Safe to run repeatedly: the
// admin is skipped when the email exists, settings are only created once, and
// lessons are only inserted into an empty table.
func Seed(gdb *gorm.DB, log *logger.Logger, path string) error {
	seedLog := log.With("component", "Seed")

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed SeedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		if seed.Admin.Email != "" {
			var count int64
			if err := tx.Model(&types.User{}).Where("email = ?", seed.Admin.Email).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				hash, err := bcrypt.GenerateFromPassword([]byte(seed.Admin.Password), bcrypt.DefaultCost)
				if err != nil {
					return fmt.Errorf("hash admin password: %w", err)
				}
				admin := &types.User{
					ID:           uuid.New(),
					Name:         seed.Admin.Name,
					Email:        seed.Admin.Email,
					PasswordHash: string(hash),
					Subject:      seed.Admin.Subject,
				}
				if err := tx.Create(admin).Error; err != nil {
					return err
				}
				seedLog.Info("Seeded admin user", "email", seed.Admin.Email)
			}
		}

		settings := types.Settings{
			PrimaryColor:    seed.Settings.PrimaryColor,
			SecondaryColor:  seed.Settings.SecondaryColor,
			HeroTitle:       seed.Settings.HeroTitle,
			HeroDescription: seed.Settings.HeroDescription,
			TeacherName:     seed.Settings.TeacherName,
			TeacherSubject:  seed.Settings.TeacherSubject,
			TeacherPhoto:    seed.Settings.TeacherPhoto,
			UpdatedAt:       time.Now(),
		}
		if _, err := repos.NewSettingsRepo(tx, log).Ensure(context.Background(), settings); err != nil {
			return err
		}

		var lessonCount int64
		if err := tx.Model(&types.Lesson{}).Count(&lessonCount).Error; err != nil {
			return err
		}
		if lessonCount == 0 {
			for _, l := range seed.Lessons {
				lesson := &types.Lesson{
					ID:          uuid.New(),
					Title:       l.Title,
					Description: l.Description,
					Level:       l.Level,
					Thumbnail:   l.Thumbnail,
				}
				if err := tx.Create(lesson).Error; err != nil {
					return err
				}
			}
			seedLog.Info("Seeded lessons", "count", len(seed.Lessons))
		}
		return nil
	})
}
