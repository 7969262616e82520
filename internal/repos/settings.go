package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

// settingsRowID addresses the one branding row. It stays private to this
// package so nothing else can couple to the magic id.
const settingsRowID = 1

type SettingsRepo interface {
	Get(ctx context.Context) (*types.Settings, error)
	Ensure(ctx context.Context, defaults types.Settings) (*types.Settings, error)
	Update(ctx context.Context, fields map[string]interface{}) (*types.Settings, error)
}

type settingsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSettingsRepo(db *gorm.DB, baseLog *logger.Logger) SettingsRepo {
	return &settingsRepo{db: db, log: baseLog.With("repo", "SettingsRepo")}
}

// Get creates the row with empty branding the first time it is asked for, so
// callers never see a missing-settings error.
func (sr *settingsRepo) Get(ctx context.Context) (*types.Settings, error) {
	var settings types.Settings
	if err := sr.db.WithContext(ctx).
		Where(types.Settings{ID: settingsRowID}).
		FirstOrCreate(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Ensure creates the row with the given defaults when it does not exist yet.
// Existing branding is left untouched, so it is safe to call on every seed run.
func (sr *settingsRepo) Ensure(ctx context.Context, defaults types.Settings) (*types.Settings, error) {
	defaults.ID = settingsRowID
	var settings types.Settings
	if err := sr.db.WithContext(ctx).
		Where(types.Settings{ID: settingsRowID}).
		Attrs(defaults).
		FirstOrCreate(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (sr *settingsRepo) Update(ctx context.Context, fields map[string]interface{}) (*types.Settings, error) {
	if _, err := sr.Get(ctx); err != nil {
		return nil, err
	}
	fields["updated_at"] = time.Now()
	if err := sr.db.WithContext(ctx).
		Model(&types.Settings{}).
		Where("id = ?", settingsRowID).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	var settings types.Settings
	if err := sr.db.WithContext(ctx).
		Where("id = ?", settingsRowID).
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}
