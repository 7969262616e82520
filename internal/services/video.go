package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/apierr"
	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/repos"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

const defaultVideoPageSize = 20

type ListVideosInput struct {
	LessonID string
	Sort     string
	Page     int
	Limit    int
}

type VideoList struct {
	Videos     []*types.Video   `json:"videos"`
	Pagination types.Pagination `json:"pagination"`
}

type CreateVideoInput struct {
	LessonID string `json:"lesson_id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Platform string `json:"platform"`
	Duration int    `json:"duration"`
}

type UpdateVideoInput struct {
	Title    *string `json:"title"`
	URL      *string `json:"url"`
	Platform *string `json:"platform"`
	Duration *int    `json:"duration"`
}

type VideoService interface {
	List(ctx context.Context, in ListVideosInput) (*VideoList, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Video, error)
	Create(ctx context.Context, in CreateVideoInput) (*types.Video, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateVideoInput) (*types.Video, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RecordView(ctx context.Context, id uuid.UUID) error
}

type videoService struct {
	db         *gorm.DB
	log        *logger.Logger
	videoRepo  repos.VideoRepo
	lessonRepo repos.LessonRepo
}

func NewVideoService(db *gorm.DB, log *logger.Logger, videoRepo repos.VideoRepo, lessonRepo repos.LessonRepo) VideoService {
	return &videoService{
		db:         db,
		log:        log.With("service", "VideoService"),
		videoRepo:  videoRepo,
		lessonRepo: lessonRepo,
	}
}

func (vs *videoService) List(ctx context.Context, in ListVideosInput) (*VideoList, error) {
	page, limit := normalizePage(in.Page, in.Limit, defaultVideoPageSize)
	filter := repos.VideoFilter{Sort: in.Sort, Page: page, Limit: limit}
	if in.LessonID != "" {
		lessonID, err := uuid.Parse(in.LessonID)
		if err != nil {
			return nil, apierr.Validation("Invalid lesson ID")
		}
		filter.LessonID = &lessonID
	}
	videos, total, err := vs.videoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []*types.Video{}
	}
	return &VideoList{
		Videos:     videos,
		Pagination: types.NewPagination(page, limit, total),
	}, nil
}

func (vs *videoService) Get(ctx context.Context, id uuid.UUID) (*types.Video, error) {
	video, err := vs.videoRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, notFound(err, "Video not found")
	}
	return video, nil
}

// Create verifies the parent lesson, inserts the video and recounts the
// lesson's video_count inside one transaction.
func (vs *videoService) Create(ctx context.Context, in CreateVideoInput) (*types.Video, error) {
	if in.LessonID == "" || in.Title == "" || in.URL == "" {
		return nil, apierr.Validation("Lesson ID, title, and URL are required")
	}
	lessonID, err := uuid.Parse(in.LessonID)
	if err != nil {
		return nil, apierr.Validation("Invalid lesson ID")
	}

	platform := in.Platform
	if platform == "" {
		platform = "youtube"
	}

	video := &types.Video{
		ID:       uuid.New(),
		LessonID: lessonID,
		Title:    in.Title,
		URL:      in.URL,
		Platform: platform,
		Duration: in.Duration,
	}
	if err := vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := vs.lessonRepo.Exists(ctx, tx, lessonID)
		if err != nil {
			return err
		}
		if !exists {
			return apierr.NotFound("Lesson not found")
		}
		if _, err := vs.videoRepo.Create(ctx, tx, video); err != nil {
			return err
		}
		return vs.lessonRepo.RecountVideos(ctx, tx, lessonID)
	}); err != nil {
		return nil, err
	}
	return video, nil
}

func (vs *videoService) Update(ctx context.Context, id uuid.UUID, in UpdateVideoInput) (*types.Video, error) {
	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.URL != nil {
		fields["url"] = *in.URL
	}
	if in.Platform != nil {
		fields["platform"] = *in.Platform
	}
	if in.Duration != nil {
		fields["duration"] = *in.Duration
	}
	if len(fields) == 0 {
		return vs.Get(ctx, id)
	}
	video, err := vs.videoRepo.Update(ctx, nil, id, fields)
	if err != nil {
		return nil, notFound(err, "Video not found")
	}
	return video, nil
}

// Delete removes the video and recounts the parent lesson in one transaction.
func (vs *videoService) Delete(ctx context.Context, id uuid.UUID) error {
	return vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		video, err := vs.videoRepo.GetByID(ctx, tx, id)
		if err != nil {
			return notFound(err, "Video not found")
		}
		if err := vs.videoRepo.Delete(ctx, tx, id); err != nil {
			return notFound(err, "Video not found")
		}
		return vs.lessonRepo.RecountVideos(ctx, tx, video.LessonID)
	})
}

func (vs *videoService) RecordView(ctx context.Context, id uuid.UUID) error {
	return notFound(vs.videoRepo.IncrementViews(ctx, id), "Video not found")
}
