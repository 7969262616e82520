package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/almasoudi/tutorbridge-backend/internal/http/response"
	"github.com/almasoudi/tutorbridge-backend/internal/services"
)

type MessageHandler struct {
	svc services.MessageService
}

func NewMessageHandler(svc services.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// GET /api/messages
func (h *MessageHandler) List(c *gin.Context) {
	in := services.ListMessagesInput{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 0),
	}
	if raw := c.Query("is_read"); raw != "" {
		isRead := raw == "true"
		in.IsRead = &isRead
	}
	list, err := h.svc.List(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, list)
}

// GET /api/messages/:id
func (h *MessageHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	message, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message)
}

// POST /api/messages
func (h *MessageHandler) Create(c *gin.Context) {
	var in services.CreateMessageInput
	if !bindJSON(c, &in) {
		return
	}
	message, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, message)
}

// PUT /api/messages/:id
func (h *MessageHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.UpdateMessageInput
	if !bindJSON(c, &in) {
		return
	}
	message, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message)
}

// DELETE /api/messages/:id
func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Message deleted successfully"})
}

// PUT /api/messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	message, err := h.svc.MarkRead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message)
}
