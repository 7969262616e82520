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

const defaultFilePageSize = 20

type ListFilesInput struct {
	LessonID string
	Sort     string
	Page     int
	Limit    int
}

type FileList struct {
	Files      []*types.File    `json:"files"`
	Pagination types.Pagination `json:"pagination"`
}

type CreateFileInput struct {
	LessonID string `json:"lesson_id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
}

type UpdateFileInput struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
	Type *string `json:"type"`
	Size *int64  `json:"size"`
}

type FileService interface {
	List(ctx context.Context, in ListFilesInput) (*FileList, error)
	Get(ctx context.Context, id uuid.UUID) (*types.File, error)
	Create(ctx context.Context, in CreateFileInput) (*types.File, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateFileInput) (*types.File, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RecordDownload(ctx context.Context, id uuid.UUID) error
}

type fileService struct {
	db         *gorm.DB
	log        *logger.Logger
	fileRepo   repos.FileRepo
	lessonRepo repos.LessonRepo
}

func NewFileService(db *gorm.DB, log *logger.Logger, fileRepo repos.FileRepo, lessonRepo repos.LessonRepo) FileService {
	return &fileService{
		db:         db,
		log:        log.With("service", "FileService"),
		fileRepo:   fileRepo,
		lessonRepo: lessonRepo,
	}
}

func (fs *fileService) List(ctx context.Context, in ListFilesInput) (*FileList, error) {
	page, limit := normalizePage(in.Page, in.Limit, defaultFilePageSize)
	filter := repos.FileFilter{Sort: in.Sort, Page: page, Limit: limit}
	if in.LessonID != "" {
		lessonID, err := uuid.Parse(in.LessonID)
		if err != nil {
			return nil, apierr.Validation("Invalid lesson ID")
		}
		filter.LessonID = &lessonID
	}
	files, total, err := fs.fileRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []*types.File{}
	}
	return &FileList{
		Files:      files,
		Pagination: types.NewPagination(page, limit, total),
	}, nil
}

func (fs *fileService) Get(ctx context.Context, id uuid.UUID) (*types.File, error) {
	file, err := fs.fileRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, notFound(err, "File not found")
	}
	return file, nil
}

func (fs *fileService) Create(ctx context.Context, in CreateFileInput) (*types.File, error) {
	if in.LessonID == "" || in.Name == "" || in.URL == "" {
		return nil, apierr.Validation("Lesson ID, name, and URL are required")
	}
	lessonID, err := uuid.Parse(in.LessonID)
	if err != nil {
		return nil, apierr.Validation("Invalid lesson ID")
	}

	fileType := in.Type
	if fileType == "" {
		fileType = "pdf"
	}

	file := &types.File{
		ID:       uuid.New(),
		LessonID: lessonID,
		Name:     in.Name,
		URL:      in.URL,
		Type:     fileType,
		Size:     in.Size,
	}
	if err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := fs.lessonRepo.Exists(ctx, tx, lessonID)
		if err != nil {
			return err
		}
		if !exists {
			return apierr.NotFound("Lesson not found")
		}
		if _, err := fs.fileRepo.Create(ctx, tx, file); err != nil {
			return err
		}
		return fs.lessonRepo.RecountFiles(ctx, tx, lessonID)
	}); err != nil {
		return nil, err
	}
	return file, nil
}

func (fs *fileService) Update(ctx context.Context, id uuid.UUID, in UpdateFileInput) (*types.File, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.URL != nil {
		fields["url"] = *in.URL
	}
	if in.Type != nil {
		fields["type"] = *in.Type
	}
	if in.Size != nil {
		fields["size"] = *in.Size
	}
	if len(fields) == 0 {
		return fs.Get(ctx, id)
	}
	file, err := fs.fileRepo.Update(ctx, nil, id, fields)
	if err != nil {
		return nil, notFound(err, "File not found")
	}
	return file, nil
}

func (fs *fileService) Delete(ctx context.Context, id uuid.UUID) error {
	return fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		file, err := fs.fileRepo.GetByID(ctx, tx, id)
		if err != nil {
			return notFound(err, "File not found")
		}
		if err := fs.fileRepo.Delete(ctx, tx, id); err != nil {
			return notFound(err, "File not found")
		}
		return fs.lessonRepo.RecountFiles(ctx, tx, file.LessonID)
	})
}

func (fs *fileService) RecordDownload(ctx context.Context, id uuid.UUID) error {
	return notFound(fs.fileRepo.IncrementDownloads(ctx, id), "File not found")
}
