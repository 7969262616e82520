package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

// LessonFilter narrows List. Level "all" (or empty) matches every level;
// Search is a case-insensitive substring match over title and description.
type LessonFilter struct {
	Level  string
	Search string
	Page   int
	Limit  int
}

type LessonRepo interface {
	List(ctx context.Context, filter LessonFilter) ([]*types.Lesson, int64, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Lesson, error)
	Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) (*types.Lesson, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*types.Lesson, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
	ListPopular(ctx context.Context, limit int) ([]*types.Lesson, error)
	ListCreatedSince(ctx context.Context, cutoff time.Time) ([]*types.Lesson, error)
	RecountVideos(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	RecountFiles(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{db: db, log: baseLog.With("repo", "LessonRepo")}
}

func (lr *lessonRepo) scope(filter LessonFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.Level != "" && filter.Level != "all" {
			q = q.Where("level = ?", filter.Level)
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			q = q.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
		}
		return q
	}
}

func (lr *lessonRepo) List(ctx context.Context, filter LessonFilter) ([]*types.Lesson, int64, error) {
	var total int64
	if err := lr.db.WithContext(ctx).
		Model(&types.Lesson{}).
		Scopes(lr.scope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lessons []*types.Lesson
	if err := lr.db.WithContext(ctx).
		Scopes(lr.scope(filter)).
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&lessons).Error; err != nil {
		return nil, 0, err
	}
	return lessons, total, nil
}

func (lr *lessonRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var lesson types.Lesson
	if err := transaction.WithContext(ctx).Where("id = ?", id).First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (lr *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) (*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if err := transaction.WithContext(ctx).Create(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

func (lr *lessonRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Lesson{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return lr.GetByID(ctx, tx, id)
}

func (lr *lessonRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	res := transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.Lesson{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (lr *lessonRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Lesson{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (lr *lessonRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := lr.db.WithContext(ctx).Model(&types.Lesson{}).Count(&count).Error
	return count, err
}

func (lr *lessonRepo) ListPopular(ctx context.Context, limit int) ([]*types.Lesson, error) {
	var lessons []*types.Lesson
	if err := lr.db.WithContext(ctx).
		Order("video_count DESC").
		Limit(limit).
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (lr *lessonRepo) ListCreatedSince(ctx context.Context, cutoff time.Time) ([]*types.Lesson, error) {
	var lessons []*types.Lesson
	if err := lr.db.WithContext(ctx).
		Where("created_at >= ?", cutoff).
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

// RecountVideos resets video_count from the live child rows. Idempotent, and
// safe to run inside the same transaction as the child write.
func (lr *lessonRepo) RecountVideos(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Lesson{}).
		Where("id = ?", id).
		UpdateColumn("video_count", gorm.Expr("(SELECT COUNT(*) FROM videos WHERE lesson_id = ?)", id)).Error
}

func (lr *lessonRepo) RecountFiles(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Lesson{}).
		Where("id = ?", id).
		UpdateColumn("file_count", gorm.Expr("(SELECT COUNT(*) FROM files WHERE lesson_id = ?)", id)).Error
}
