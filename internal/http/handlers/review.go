package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/almasoudi/tutorbridge-backend/internal/http/response"
	"github.com/almasoudi/tutorbridge-backend/internal/services"
)

type ReviewHandler struct {
	svc services.ReviewService
}

func NewReviewHandler(svc services.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// GET /api/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	in := services.ListReviewsInput{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 0),
	}
	if raw := c.Query("rating"); raw != "" {
		if rating, err := strconv.Atoi(raw); err == nil {
			in.Rating = &rating
		}
	}
	list, err := h.svc.List(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, list)
}

// GET /api/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	review, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, review)
}

// POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var in services.CreateReviewInput
	if !bindJSON(c, &in) {
		return
	}
	review, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, review)
}

// PUT /api/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.UpdateReviewInput
	if !bindJSON(c, &in) {
		return
	}
	review, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, review)
}

// DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Review deleted successfully"})
}
