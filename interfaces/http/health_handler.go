package http

import (
	"context"
	"net/http"
	"time"

	"transcript-app/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

type IHealthHandler interface {
	Healthz(c *gin.Context)
}

type HealthHandler struct {
	ping func(ctx context.Context) error
}

// NewHealthHandler builds the health check. ping may be nil, in which case the process being up is enough.
func NewHealthHandler(ping func(ctx context.Context) error) IHealthHandler {
	return &HealthHandler{ping: ping}
}

// Healthz returns OK for health checks
func (h *HealthHandler) Healthz(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
