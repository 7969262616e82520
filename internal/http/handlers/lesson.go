package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/almasoudi/tutorbridge-backend/internal/http/response"
	"github.com/almasoudi/tutorbridge-backend/internal/services"
)

type LessonHandler struct {
	svc services.LessonService
}

func NewLessonHandler(svc services.LessonService) *LessonHandler {
	return &LessonHandler{svc: svc}
}

// GET /api/lessons
func (h *LessonHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), services.ListLessonsInput{
		Level:  c.Query("level"),
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, list)
}

// GET /api/lessons/:id
func (h *LessonHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}

// POST /api/lessons
func (h *LessonHandler) Create(c *gin.Context) {
	var in services.CreateLessonInput
	if !bindJSON(c, &in) {
		return
	}
	lesson, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lesson)
}

// PUT /api/lessons/:id
func (h *LessonHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.UpdateLessonInput
	if !bindJSON(c, &in) {
		return
	}
	lesson, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, lesson)
}

// DELETE /api/lessons/:id
func (h *LessonHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Lesson deleted successfully"})
}
