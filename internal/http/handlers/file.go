package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/almasoudi/tutorbridge-backend/internal/http/response"
	"github.com/almasoudi/tutorbridge-backend/internal/services"
)

type FileHandler struct {
	svc services.FileService
}

func NewFileHandler(svc services.FileService) *FileHandler {
	return &FileHandler{svc: svc}
}

// GET /api/files
func (h *FileHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), services.ListFilesInput{
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

// GET /api/files/:id
func (h *FileHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	file, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, file)
}

// POST /api/files
func (h *FileHandler) Create(c *gin.Context) {
	var in services.CreateFileInput
	if !bindJSON(c, &in) {
		return
	}
	file, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, file)
}

// PUT /api/files/:id
func (h *FileHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.UpdateFileInput
	if !bindJSON(c, &in) {
		return
	}
	file, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, file)
}

// DELETE /api/files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "File deleted successfully"})
}

// PUT /api/files/:id/download
func (h *FileHandler) RecordDownload(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.RecordDownload(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Download count updated"})
}
