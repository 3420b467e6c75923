package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"candidate-backend/internal/shared/telemetry"
)

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Error sends the service's error envelope and logs the failure. Every error
// leaving the HTTP boundary has the shape {"error": message}.
func Error(c *gin.Context, status int, message string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
