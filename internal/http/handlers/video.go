package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/almasoudi/tutorbridge-backend/internal/http/response"
	"github.com/almasoudi/tutorbridge-backend/internal/services"
)

type VideoHandler struct {
	svc services.VideoService
}

func NewVideoHandler(svc services.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// GET /api/videos
func (h *VideoHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), services.ListVideosInput{
		LessonID: c.Query("lesson_id"),
		Sort:     c.Query("sort"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, list)
}

// GET /api/videos/:id
func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	video, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, video)
}

// POST /api/videos
func (h *VideoHandler) Create(c *gin.Context) {
	var in services.CreateVideoInput
	if !bindJSON(c, &in) {
		return
	}
	video, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, video)
}

// PUT /api/videos/:id
func (h *VideoHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.UpdateVideoInput
	if !bindJSON(c, &in) {
		return
	}
	video, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, video)
}

// DELETE /api/videos/:id
func (h *VideoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Video deleted successfully"})
}

// PUT /api/videos/:id/view
func (h *VideoHandler) RecordView(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.RecordView(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "View count updated"})
}
