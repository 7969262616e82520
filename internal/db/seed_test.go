package db

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

const seedFixture = `
admin:
  name: Test Admin
  email: admin@test.local
  password: test-pass
  subject: Mathematics

settings:
  primary_color: "#112233"
  teacher_name: Test Admin

lessons:
  - title: Algebra I
    level: beginner
  - title: Geometry
    level: intermediate
`

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	path := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(path, []byte(seedFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	for i := 0; i < 2; i++ {
		if err := Seed(gdb, log, path); err != nil {
			t.Fatalf("seed run %d: %v", i+1, err)
		}
	}

	var users, lessons, settings int64
	if err := gdb.Model(&types.User{}).Count(&users).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if err := gdb.Model(&types.Lesson{}).Count(&lessons).Error; err != nil {
		t.Fatalf("count lessons: %v", err)
	}
	if err := gdb.Model(&types.Settings{}).Count(&settings).Error; err != nil {
		t.Fatalf("count settings: %v", err)
	}
	if users != 1 || lessons != 2 || settings != 1 {
		t.Fatalf("double seed duplicated rows: users=%d lessons=%d settings=%d", users, lessons, settings)
	}

	var admin types.User
	if err := gdb.Where("email = ?", "admin@test.local").First(&admin).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if admin.PasswordHash == "test-pass" || admin.PasswordHash == "" {
		t.Fatalf("admin password stored without hashing")
	}
}

func TestSeedMissingFile(t *testing.T) {
	t.Parallel()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	if err := Seed(gdb, log, "does-not-exist.yaml"); err == nil {
		t.Fatalf("expected error for missing seed file")
	}
}
