package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

// VideoFilter narrows List. Sort "views" orders by view count descending for
// the public listing; anything else falls back to newest first.
type VideoFilter struct {
	LessonID *uuid.UUID
	Sort     string
	Page     int
	Limit    int
}

type VideoRepo interface {
	List(ctx context.Context, filter VideoFilter) ([]*types.Video, int64, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Video, error)
	Create(ctx context.Context, tx *gorm.DB, video *types.Video) (*types.Video, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*types.Video, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.Video, error)
	DeleteByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	SumViews(ctx context.Context) (int64, error)
	ListPopular(ctx context.Context, limit int) ([]*types.Video, error)
	ListCreatedSince(ctx context.Context, cutoff time.Time) ([]*types.Video, error)
}

type videoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	return &videoRepo{db: db, log: baseLog.With("repo", "VideoRepo")}
}

func (vr *videoRepo) scope(filter VideoFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.LessonID != nil {
			q = q.Where("lesson_id = ?", *filter.LessonID)
		}
		return q
	}
}

func (vr *videoRepo) List(ctx context.Context, filter VideoFilter) ([]*types.Video, int64, error) {
	var total int64
	if err := vr.db.WithContext(ctx).
		Model(&types.Video{}).
		Scopes(vr.scope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if filter.Sort == "views" {
		order = "views DESC"
	}

	var videos []*types.Video
	if err := vr.db.WithContext(ctx).
		Scopes(vr.scope(filter)).
		Order(order).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&videos).Error; err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (vr *videoRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var video types.Video
	if err := transaction.WithContext(ctx).Where("id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (vr *videoRepo) Create(ctx context.Context, tx *gorm.DB, video *types.Video) (*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	if err := transaction.WithContext(ctx).Create(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

func (vr *videoRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) (*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Video{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return vr.GetByID(ctx, tx, id)
}

func (vr *videoRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	res := transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.Video{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (vr *videoRepo) ListByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var videos []*types.Video
	if err := transaction.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("created_at ASC").
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (vr *videoRepo) DeleteByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).Where("lesson_id = ?", lessonID).Delete(&types.Video{}).Error
}

// IncrementViews bumps the counter with a single atomic update so concurrent
// bumps never lose increments.
func (vr *videoRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	res := vr.db.WithContext(ctx).
		Model(&types.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (vr *videoRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := vr.db.WithContext(ctx).Model(&types.Video{}).Count(&count).Error
	return count, err
}

func (vr *videoRepo) SumViews(ctx context.Context) (int64, error) {
	var sum int64
	err := vr.db.WithContext(ctx).
		Model(&types.Video{}).
		Select("COALESCE(SUM(views), 0)").
		Scan(&sum).Error
	return sum, err
}

func (vr *videoRepo) ListPopular(ctx context.Context, limit int) ([]*types.Video, error) {
	var videos []*types.Video
	if err := vr.db.WithContext(ctx).
		Order("views DESC").
		Limit(limit).
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (vr *videoRepo) ListCreatedSince(ctx context.Context, cutoff time.Time) ([]*types.Video, error) {
	var videos []*types.Video
	if err := vr.db.WithContext(ctx).
		Where("created_at >= ?", cutoff).
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}
