package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/almasoudi/tutorbridge-backend/internal/http/response"
	"github.com/almasoudi/tutorbridge-backend/internal/services"
)

type DashboardHandler struct {
	svc services.DashboardService
}

func NewDashboardHandler(svc services.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// GET /api/dashboard/recent-messages
func (h *DashboardHandler) RecentMessages(c *gin.Context) {
	messages, err := h.svc.RecentMessages(c.Request.Context(), queryInt(c, "limit", 5))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, messages)
}

// GET /api/dashboard/recent-reviews
func (h *DashboardHandler) RecentReviews(c *gin.Context) {
	reviews, err := h.svc.RecentReviews(c.Request.Context(), queryInt(c, "limit", 5))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, reviews)
}

// GET /api/dashboard/popular-lessons
func (h *DashboardHandler) PopularLessons(c *gin.Context) {
	lessons, err := h.svc.PopularLessons(c.Request.Context(), queryInt(c, "limit", 5))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, lessons)
}

// GET /api/dashboard/popular-videos
func (h *DashboardHandler) PopularVideos(c *gin.Context) {
	videos, err := h.svc.PopularVideos(c.Request.Context(), queryInt(c, "limit", 5))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, videos)
}

// GET /api/dashboard/analytics
func (h *DashboardHandler) Analytics(c *gin.Context) {
	report, err := h.svc.Analytics(c.Request.Context(), c.DefaultQuery("period", "7d"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// GET /api/dashboard/settings
func (h *DashboardHandler) GetSettings(c *gin.Context) {
	settings, err := h.svc.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, settings)
}

// PUT /api/dashboard/settings
func (h *DashboardHandler) UpdateSettings(c *gin.Context) {
	var in services.UpdateSettingsInput
	if !bindJSON(c, &in) {
		return
	}
	settings, err := h.svc.UpdateSettings(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, settings)
}
