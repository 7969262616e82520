package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/almasoudi/tutorbridge-backend/internal/repos"
)

func TestFileCreateValidation(t *testing.T) {
	t.Parallel()
	gdb := newTestDB(t)
	log := newTestLogger()
	fileRepo := repos.NewFileRepo(gdb, log)
	lessonRepo := repos.NewLessonRepo(gdb, log)
	svc := NewFileService(gdb, log, fileRepo, lessonRepo)

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Create(context.Background(), CreateFileInput{Name: "only name"})
		assertAPIError(t, err, http.StatusBadRequest, "Lesson ID, name, and URL are required")
	})

	t.Run("malformed lesson id", func(t *testing.T) {
		_, err := svc.Create(context.Background(), CreateFileInput{
			LessonID: "not-a-uuid", Name: "f", URL: "https://example.com",
		})
		assertAPIError(t, err, http.StatusBadRequest, "Invalid lesson ID")
	})

	t.Run("unknown lesson", func(t *testing.T) {
		_, err := svc.Create(context.Background(), CreateFileInput{
			LessonID: uuid.NewString(), Name: "f", URL: "https://example.com",
		})
		assertAPIError(t, err, http.StatusNotFound, "Lesson not found")
	})
}

func TestFileCreateUpdatesLessonCount(t *testing.T) {
	t.Parallel()
	gdb := newTestDB(t)
	log := newTestLogger()
	fileRepo := repos.NewFileRepo(gdb, log)
	lessonRepo := repos.NewLessonRepo(gdb, log)
	videoRepo := repos.NewVideoRepo(gdb, log)
	lessonSvc := NewLessonService(gdb, log, lessonRepo, videoRepo, fileRepo)
	fileSvc := NewFileService(gdb, log, fileRepo, lessonRepo)
	ctx := context.Background()

	lesson, err := lessonSvc.Create(ctx, CreateLessonInput{Title: "Worksheets", Level: "beginner"})
	if err != nil {
		t.Fatalf("create lesson: %v", err)
	}

	file, err := fileSvc.Create(ctx, CreateFileInput{
		LessonID: lesson.ID.String(), Name: "exercises.pdf", URL: "https://example.com/f1",
	})
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	if file.Type != "pdf" {
		t.Fatalf("type default: got=%q want=%q", file.Type, "pdf")
	}

	got, err := lessonRepo.GetByID(ctx, nil, lesson.ID)
	if err != nil {
		t.Fatalf("get lesson: %v", err)
	}
	if got.FileCount != 1 {
		t.Fatalf("file_count after create: got=%d want=1", got.FileCount)
	}

	if err := fileSvc.Delete(ctx, file.ID); err != nil {
		t.Fatalf("delete file: %v", err)
	}
	got, err = lessonRepo.GetByID(ctx, nil, lesson.ID)
	if err != nil {
		t.Fatalf("get lesson: %v", err)
	}
	if got.FileCount != 0 {
		t.Fatalf("file_count after delete: got=%d want=0", got.FileCount)
	}
}

func TestFileRecordDownloadUnknownID(t *testing.T) {
	t.Parallel()
	gdb := newTestDB(t)
	log := newTestLogger()
	svc := NewFileService(gdb, log, repos.NewFileRepo(gdb, log), repos.NewLessonRepo(gdb, log))

	err := svc.RecordDownload(context.Background(), uuid.New())
	assertAPIError(t, err, http.StatusNotFound, "File not found")
}
