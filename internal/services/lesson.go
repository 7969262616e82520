package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/apierr"
	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/repos"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

const defaultLessonPageSize = 12

type ListLessonsInput struct {
	Level  string
	Search string
	Page   int
	Limit  int
}

type LessonList struct {
	Lessons    []*types.Lesson  `json:"lessons"`
	Pagination types.Pagination `json:"pagination"`
}

// LessonDetail is a lesson with its child collections embedded, both ordered
// by creation time ascending.
type LessonDetail struct {
	types.Lesson
	Videos []*types.Video `json:"videos"`
	Files  []*types.File  `json:"files"`
}

type CreateLessonInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       string `json:"level"`
	Thumbnail   string `json:"thumbnail"`
}

type UpdateLessonInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Level       *string `json:"level"`
	Thumbnail   *string `json:"thumbnail"`
}

type LessonService interface {
	List(ctx context.Context, in ListLessonsInput) (*LessonList, error)
	Get(ctx context.Context, id uuid.UUID) (*LessonDetail, error)
	Create(ctx context.Context, in CreateLessonInput) (*types.Lesson, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateLessonInput) (*types.Lesson, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type lessonService struct {
	db         *gorm.DB
	log        *logger.Logger
	lessonRepo repos.LessonRepo
	videoRepo  repos.VideoRepo
	fileRepo   repos.FileRepo
}

func NewLessonService(db *gorm.DB, log *logger.Logger, lessonRepo repos.LessonRepo, videoRepo repos.VideoRepo, fileRepo repos.FileRepo) LessonService {
	return &lessonService{
		db:         db,
		log:        log.With("service", "LessonService"),
		lessonRepo: lessonRepo,
		videoRepo:  videoRepo,
		fileRepo:   fileRepo,
	}
}

func (ls *lessonService) List(ctx context.Context, in ListLessonsInput) (*LessonList, error) {
	page, limit := normalizePage(in.Page, in.Limit, defaultLessonPageSize)
	lessons, total, err := ls.lessonRepo.List(ctx, repos.LessonFilter{
		Level:  in.Level,
		Search: in.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	if lessons == nil {
		lessons = []*types.Lesson{}
	}
	return &LessonList{
		Lessons:    lessons,
		Pagination: types.NewPagination(page, limit, total),
	}, nil
}

func (ls *lessonService) Get(ctx context.Context, id uuid.UUID) (*LessonDetail, error) {
	lesson, err := ls.lessonRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, notFound(err, "Lesson not found")
	}
	videos, err := ls.videoRepo.ListByLessonID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	files, err := ls.fileRepo.ListByLessonID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []*types.Video{}
	}
	if files == nil {
		files = []*types.File{}
	}
	return &LessonDetail{Lesson: *lesson, Videos: videos, Files: files}, nil
}

func (ls *lessonService) Create(ctx context.Context, in CreateLessonInput) (*types.Lesson, error) {
	if in.Title == "" || in.Level == "" {
		return nil, apierr.Validation("Title and level are required")
	}
	lesson := &types.Lesson{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Level:       in.Level,
		Thumbnail:   in.Thumbnail,
	}
	return ls.lessonRepo.Create(ctx, nil, lesson)
}

func (ls *lessonService) Update(ctx context.Context, id uuid.UUID, in UpdateLessonInput) (*types.Lesson, error) {
	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Level != nil {
		fields["level"] = *in.Level
	}
	if in.Thumbnail != nil {
		fields["thumbnail"] = *in.Thumbnail
	}
	if len(fields) == 0 {
		lesson, err := ls.lessonRepo.GetByID(ctx, nil, id)
		return lesson, notFound(err, "Lesson not found")
	}
	lesson, err := ls.lessonRepo.Update(ctx, nil, id, fields)
	if err != nil {
		return nil, notFound(err, "Lesson not found")
	}
	return lesson, nil
}

// Delete removes the lesson and all of its videos and files in one
// transaction, so a failed cascade never leaves orphans behind.
func (ls *lessonService) Delete(ctx context.Context, id uuid.UUID) error {
	return ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ls.lessonRepo.GetByID(ctx, tx, id); err != nil {
			return notFound(err, "Lesson not found")
		}
		if err := ls.videoRepo.DeleteByLessonID(ctx, tx, id); err != nil {
			return err
		}
		if err := ls.fileRepo.DeleteByLessonID(ctx, tx, id); err != nil {
			return err
		}
		return ls.lessonRepo.Delete(ctx, tx, id)
	})
}

func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierr.NotFound(msg)
	}
	return err
}
