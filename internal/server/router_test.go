package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/almasoudi/tutorbridge-backend/internal/db"
	"github.com/almasoudi/tutorbridge-backend/internal/http/handlers"
	"github.com/almasoudi/tutorbridge-backend/internal/http/middleware"
	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/repos"
	"github.com/almasoudi/tutorbridge-backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	lessonRepo := repos.NewLessonRepo(gdb, log)
	videoRepo := repos.NewVideoRepo(gdb, log)
	fileRepo := repos.NewFileRepo(gdb, log)
	reviewRepo := repos.NewReviewRepo(gdb, log)
	messageRepo := repos.NewMessageRepo(gdb, log)
	userRepo := repos.NewUserRepo(gdb, log)
	settingsRepo := repos.NewSettingsRepo(gdb, log)

	authSvc := services.NewAuthService(log, userRepo, "test-secret", 24*time.Hour)
	lessonSvc := services.NewLessonService(gdb, log, lessonRepo, videoRepo, fileRepo)
	videoSvc := services.NewVideoService(gdb, log, videoRepo, lessonRepo)
	fileSvc := services.NewFileService(gdb, log, fileRepo, lessonRepo)
	reviewSvc := services.NewReviewService(gdb, log, reviewRepo)
	messageSvc := services.NewMessageService(gdb, log, messageRepo)
	dashboardSvc := services.NewDashboardService(log, lessonRepo, videoRepo, fileRepo, reviewRepo, messageRepo, settingsRepo)

	return NewRouter(RouterConfig{
		Log:              log,
		FrontendURL:      "http://localhost:5173",
		AuthMiddleware:   middleware.NewAuthMiddleware(log, authSvc),
		HealthHandler:    handlers.NewHealthHandler(),
		AuthHandler:      handlers.NewAuthHandler(authSvc),
		LessonHandler:    handlers.NewLessonHandler(lessonSvc),
		VideoHandler:     handlers.NewVideoHandler(videoSvc),
		FileHandler:      handlers.NewFileHandler(fileSvc),
		ReviewHandler:    handlers.NewReviewHandler(reviewSvc),
		MessageHandler:   handlers.NewMessageHandler(messageSvc),
		DashboardHandler: handlers.NewDashboardHandler(dashboardSvc),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=200", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "OK" {
		t.Fatalf("status field: got=%v want=OK", body["status"])
	}
	if body["service"] != "Teacher Platform API" {
		t.Fatalf("service field: got=%v", body["service"])
	}
	if _, ok := body["timestamp"]; !ok {
		t.Fatalf("missing timestamp field")
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status: got=%d want=404", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Route not found" {
		t.Fatalf("error field: got=%v", body["error"])
	}
}

func TestLessonCreateValidationOverHTTP(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/lessons", map[string]string{"title": "No level"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d want=400", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Title and level are required" {
		t.Fatalf("error field: got=%v", body["error"])
	}
}

func TestLessonListPaginationOverHTTP(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	for i := 0; i < 25; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/lessons", map[string]string{
			"title": fmt.Sprintf("Lesson %02d", i+1),
			"level": "beginner",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("seed %d: status=%d body=%s", i, w.Code, w.Body.String())
		}
	}

	w := doJSON(t, router, http.MethodGet, "/api/lessons?page=2&limit=10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=200", w.Code)
	}
	body := decodeBody(t, w)
	lessons, ok := body["lessons"].([]interface{})
	if !ok {
		t.Fatalf("lessons field missing or wrong type: %v", body["lessons"])
	}
	if len(lessons) != 10 {
		t.Fatalf("page size: got=%d want=10", len(lessons))
	}
	pagination, ok := body["pagination"].(map[string]interface{})
	if !ok {
		t.Fatalf("pagination field missing: %v", body["pagination"])
	}
	if pagination["total"] != float64(25) || pagination["pages"] != float64(3) || pagination["page"] != float64(2) {
		t.Fatalf("pagination: got=%v", pagination)
	}
}

func TestReviewRatingValidationOverHTTP(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/reviews", map[string]interface{}{
		"student_name": "Sara",
		"rating":       6,
		"comment":      "Too good",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d want=400", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Rating must be between 1 and 5" {
		t.Fatalf("error field: got=%v", body["error"])
	}
}

func TestVideoViewCounterOverHTTP(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/lessons", map[string]string{"title": "L", "level": "beginner"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create lesson: status=%d body=%s", w.Code, w.Body.String())
	}
	lessonID, _ := decodeBody(t, w)["id"].(string)
	if lessonID == "" {
		t.Fatalf("lesson id missing in %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/videos", map[string]interface{}{
		"lesson_id": lessonID,
		"title":     "Intro",
		"url":       "https://example.com/v1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create video: status=%d body=%s", w.Code, w.Body.String())
	}
	videoID, _ := decodeBody(t, w)["id"].(string)
	if videoID == "" {
		t.Fatalf("video id missing in %s", w.Body.String())
	}

	for i := 0; i < 2; i++ {
		w = doJSON(t, router, http.MethodPut, "/api/videos/"+videoID+"/view", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("record view %d: status=%d body=%s", i, w.Code, w.Body.String())
		}
		if body := decodeBody(t, w); body["message"] != "View count updated" {
			t.Fatalf("message field: got=%v", body["message"])
		}
	}

	w = doJSON(t, router, http.MethodGet, "/api/videos/"+videoID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get video: status=%d", w.Code)
	}
	if body := decodeBody(t, w); body["views"] != float64(2) {
		t.Fatalf("views after two bumps: got=%v want=2", body["views"])
	}
}

func TestFileDownloadCounterOverHTTP(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/lessons", map[string]string{"title": "L", "level": "beginner"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create lesson: status=%d body=%s", w.Code, w.Body.String())
	}
	lessonID, _ := decodeBody(t, w)["id"].(string)
	if lessonID == "" {
		t.Fatalf("lesson id missing in %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/files", map[string]interface{}{
		"lesson_id": lessonID,
		"name":      "worksheet.pdf",
		"url":       "https://example.com/f1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create file: status=%d body=%s", w.Code, w.Body.String())
	}
	fileID, _ := decodeBody(t, w)["id"].(string)
	if fileID == "" {
		t.Fatalf("file id missing in %s", w.Body.String())
	}

	for i := 0; i < 2; i++ {
		w = doJSON(t, router, http.MethodPut, "/api/files/"+fileID+"/download", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("record download %d: status=%d body=%s", i, w.Code, w.Body.String())
		}
		if body := decodeBody(t, w); body["message"] != "Download count updated" {
			t.Fatalf("message field: got=%v", body["message"])
		}
	}

	w = doJSON(t, router, http.MethodGet, "/api/files/"+fileID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get file: status=%d", w.Code)
	}
	if body := decodeBody(t, w); body["downloads"] != float64(2) {
		t.Fatalf("downloads after two bumps: got=%v want=2", body["downloads"])
	}
}

func TestInvalidIDParam(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/lessons/not-a-uuid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d want=400", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Invalid id" {
		t.Fatalf("error field: got=%v", body["error"])
	}
}

func TestAuthFlowOverHTTP(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Ahmed",
		"email":    "ahmed@example.com",
		"password": "s3cret-pass",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status=%d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ahmed@example.com",
		"password": "s3cret-pass",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status=%d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["message"] != "Login successful" {
		t.Fatalf("message field: got=%v", body["message"])
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("token missing in login response")
	}
	if user, ok := body["user"].(map[string]interface{}); !ok {
		t.Fatalf("user missing in login response")
	} else if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash leaked in login response")
	}

	t.Run("me without token", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/auth/me", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status: got=%d want=401", w.Code)
		}
		if body := decodeBody(t, w); body["error"] != "No token provided" {
			t.Fatalf("error field: got=%v", body["error"])
		}
	})

	t.Run("me with token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status: got=%d body=%s", w.Code, w.Body.String())
		}
		if body := decodeBody(t, w); body["email"] != "ahmed@example.com" {
			t.Fatalf("email field: got=%v", body["email"])
		}
	})

	t.Run("me with bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status: got=%d want=401", w.Code)
		}
		if body := decodeBody(t, w); body["error"] != "Invalid token" {
			t.Fatalf("error field: got=%v", body["error"])
		}
	})
}

func TestMessageEmailValidationOverHTTP(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/messages", map[string]string{
		"student_name": "Sara",
		"content":      "Hello",
		"email":        "not-an-email",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d want=400", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Invalid email format" {
		t.Fatalf("error field: got=%v", body["error"])
	}
}

func TestDashboardStatsOverHTTP(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/dashboard/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=200", w.Code)
	}
	body := decodeBody(t, w)
	for _, key := range []string{
		"lessons", "videos", "files", "reviews", "messages",
		"unreadMessages", "totalViews", "totalDownloads", "averageRating",
	} {
		v, ok := body[key]
		if !ok {
			t.Fatalf("missing %q in stats response", key)
		}
		if v != float64(0) {
			t.Fatalf("%q on empty db: got=%v want=0", key, v)
		}
	}
}
