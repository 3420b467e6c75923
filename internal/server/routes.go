package server

import (
	"github.com/gin-gonic/gin"

	"candidate-backend/internal/candidates"
	"candidate-backend/internal/services/health"
	"candidate-backend/internal/shared/metrics"
	"candidate-backend/internal/shared/server/respond"
)

func registerRoutes(r *gin.Engine, h *candidates.Handler) {
	r.GET("/", func(c *gin.Context) {
		respond.OK(c, health.Status())
	})
	r.GET("/metrics", metrics.Handler())

	root := r.Group("/")
	h.RegisterRoutes(root)
}
