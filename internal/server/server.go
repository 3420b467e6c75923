package server

import (
	"github.com/gin-gonic/gin"

	"candidate-backend/internal/candidates"
	"candidate-backend/internal/shared/server/middleware"
)

// New constructs the Gin engine with middleware and routes registered.
func New(h *candidates.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
	)

	registerRoutes(r, h)
	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
