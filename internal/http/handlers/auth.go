package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/almasoudi/tutorbridge-backend/internal/http/middleware"
	"github.com/almasoudi/tutorbridge-backend/internal/http/response"
	"github.com/almasoudi/tutorbridge-backend/internal/services"
)

type AuthHandler struct {
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &in) {
		return
	}
	token, user, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in services.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// POST /api/auth/logout
//
// Tokens are stateless, so logout is client-side; the endpoint exists for the
// dashboard's sign-out flow.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.OK(c, gin.H{"message": "Logout successful"})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	user, err := h.svc.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// PUT /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var in struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if !bindJSON(c, &in) {
		return
	}
	if in.CurrentPassword == "" || in.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	userID := middleware.CurrentUserID(c)
	if err := h.svc.ChangePassword(c.Request.Context(), userID, in.CurrentPassword, in.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Password changed successfully"})
}
