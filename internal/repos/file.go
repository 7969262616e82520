package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

// FileFilter narrows List. Sort "downloads" orders by download count
// descending for the public listing; anything else is newest first.
type FileFilter struct {
	LessonID *uuid.UUID
	Sort     string
	Page     int
	Limit    int
}

type FileRepo interface {
	List(ctx context.Context, filter FileFilter) ([]*types.File, int64, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.File, error)
	Create(ctx context.Context, tx *gorm.DB, file *types.File) (*types.File, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*types.File, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.File, error)
	DeleteByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error
	IncrementDownloads(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	SumDownloads(ctx context.Context) (int64, error)
}

type fileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFileRepo(db *gorm.DB, baseLog *logger.Logger) FileRepo {
	return &fileRepo{db: db, log: baseLog.With("repo", "FileRepo")}
}

func (fr *fileRepo) scope(filter FileFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.LessonID != nil {
			q = q.Where("lesson_id = ?", *filter.LessonID)
		}
		return q
	}
}

func (fr *fileRepo) List(ctx context.Context, filter FileFilter) ([]*types.File, int64, error) {
	var total int64
	if err := fr.db.WithContext(ctx).
		Model(&types.File{}).
		Scopes(fr.scope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if filter.Sort == "downloads" {
		order = "downloads DESC"
	}

	var files []*types.File
	if err := fr.db.WithContext(ctx).
		Scopes(fr.scope(filter)).
		Order(order).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&files).Error; err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

func (fr *fileRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.File, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var file types.File
	if err := transaction.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (fr *fileRepo) Create(ctx context.Context, tx *gorm.DB, file *types.File) (*types.File, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if err := transaction.WithContext(ctx).Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

func (fr *fileRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*types.File, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.File{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return fr.GetByID(ctx, tx, id)
}

func (fr *fileRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	res := transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.File{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (fr *fileRepo) ListByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.File, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var files []*types.File
	if err := transaction.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("created_at ASC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (fr *fileRepo) DeleteByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).Where("lesson_id = ?", lessonID).Delete(&types.File{}).Error
}

func (fr *fileRepo) IncrementDownloads(ctx context.Context, id uuid.UUID) error {
	res := fr.db.WithContext(ctx).
		Model(&types.File{}).
		Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (fr *fileRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := fr.db.WithContext(ctx).Model(&types.File{}).Count(&count).Error
	return count, err
}

func (fr *fileRepo) SumDownloads(ctx context.Context) (int64, error) {
	var sum int64
	err := fr.db.WithContext(ctx).
		Model(&types.File{}).
		Select("COALESCE(SUM(downloads), 0)").
		Scan(&sum).Error
	return sum, err
}
