package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/almasoudi/tutorbridge-backend/internal/apierr"
)

func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// Error translates any error to the wire shape. Known kinds keep their status
// and message; everything else is an uncaught failure reported as a 500 with
// the raw message alongside.
func Error(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Error()})
		return
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Something went wrong!",
		"message": msg,
	})
}
