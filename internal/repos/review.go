package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

type ReviewFilter struct {
	Rating *int
	Page   int
	Limit  int
}

type ReviewRepo interface {
	List(ctx context.Context, filter ReviewFilter) ([]*types.Review, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Review, error)
	Create(ctx context.Context, review *types.Review) (*types.Review, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*types.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	AverageRating(ctx context.Context) (float64, error)
	ListRecent(ctx context.Context, limit int) ([]*types.Review, error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return &reviewRepo{db: db, log: baseLog.With("repo", "ReviewRepo")}
}

func (rr *reviewRepo) scope(filter ReviewFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.Rating != nil {
			q = q.Where("rating = ?", *filter.Rating)
		}
		return q
	}
}

func (rr *reviewRepo) List(ctx context.Context, filter ReviewFilter) ([]*types.Review, int64, error) {
	var total int64
	if err := rr.db.WithContext(ctx).
		Model(&types.Review{}).
		Scopes(rr.scope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []*types.Review
	if err := rr.db.WithContext(ctx).
		Scopes(rr.scope(filter)).
		Order("date DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (rr *reviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Review, error) {
	var review types.Review
	if err := rr.db.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (rr *reviewRepo) Create(ctx context.Context, review *types.Review) (*types.Review, error) {
	if err := rr.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (rr *reviewRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*types.Review, error) {
	res := rr.db.WithContext(ctx).
		Model(&types.Review{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return rr.GetByID(ctx, id)
}

func (rr *reviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := rr.db.WithContext(ctx).Where("id = ?", id).Delete(&types.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (rr *reviewRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := rr.db.WithContext(ctx).Model(&types.Review{}).Count(&count).Error
	return count, err
}

// AverageRating is 0 when there are no reviews.
func (rr *reviewRepo) AverageRating(ctx context.Context) (float64, error) {
	var avg float64
	err := rr.db.WithContext(ctx).
		Model(&types.Review{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}

func (rr *reviewRepo) ListRecent(ctx context.Context, limit int) ([]*types.Review, error) {
	var reviews []*types.Review
	if err := rr.db.WithContext(ctx).
		Order("date DESC").
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
