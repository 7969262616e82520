package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

type MessageFilter struct {
	IsRead *bool
	Page   int
	Limit  int
}

type MessageRepo interface {
	List(ctx context.Context, filter MessageFilter) ([]*types.Message, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Message, error)
	Create(ctx context.Context, message *types.Message) (*types.Message, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*types.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkRead(ctx context.Context, id uuid.UUID) (*types.Message, error)
	Count(ctx context.Context) (int64, error)
	CountUnread(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]*types.Message, error)
	ListCreatedSince(ctx context.Context, cutoff time.Time) ([]*types.Message, error)
}

type messageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
	return &messageRepo{db: db, log: baseLog.With("repo", "MessageRepo")}
}

func (mr *messageRepo) scope(filter MessageFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.IsRead != nil {
			q = q.Where("is_read = ?", *filter.IsRead)
		}
		return q
	}
}

func (mr *messageRepo) List(ctx context.Context, filter MessageFilter) ([]*types.Message, int64, error) {
	var total int64
	if err := mr.db.WithContext(ctx).
		Model(&types.Message{}).
		Scopes(mr.scope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []*types.Message
	if err := mr.db.WithContext(ctx).
		Scopes(mr.scope(filter)).
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (mr *messageRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Message, error) {
	var message types.Message
	if err := mr.db.WithContext(ctx).Where("id = ?", id).First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (mr *messageRepo) Create(ctx context.Context, message *types.Message) (*types.Message, error) {
	if err := mr.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

func (mr *messageRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*types.Message, error) {
	res := mr.db.WithContext(ctx).
		Model(&types.Message{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return mr.GetByID(ctx, id)
}

func (mr *messageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := mr.db.WithContext(ctx).Where("id = ?", id).Delete(&types.Message{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (mr *messageRepo) MarkRead(ctx context.Context, id uuid.UUID) (*types.Message, error) {
	res := mr.db.WithContext(ctx).
		Model(&types.Message{}).
		Where("id = ?", id).
		UpdateColumn("is_read", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return mr.GetByID(ctx, id)
}

func (mr *messageRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := mr.db.WithContext(ctx).Model(&types.Message{}).Count(&count).Error
	return count, err
}

func (mr *messageRepo) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := mr.db.WithContext(ctx).
		Model(&types.Message{}).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

func (mr *messageRepo) ListRecent(ctx context.Context, limit int) ([]*types.Message, error) {
	var messages []*types.Message
	if err := mr.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (mr *messageRepo) ListCreatedSince(ctx context.Context, cutoff time.Time) ([]*types.Message, error) {
	var messages []*types.Message
	if err := mr.db.WithContext(ctx).
		Where("created_at >= ?", cutoff).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
