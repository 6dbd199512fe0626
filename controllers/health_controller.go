package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"guate-servicios/models"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db     Pinger
	logger *slog.Logger
}

func NewHealthController(db Pinger, logger *slog.Logger) *HealthController {
	return &HealthController{db: db, logger: logger}
}

// Health is mounted at the root, outside the documented /api/v1 surface.
func (ctrl *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := ctrl.db.Ping(ctx); err != nil {
		ctrl.logger.ErrorContext(ctx, "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "error", Database: "disconnected"})
		return
	}
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Database: "connected"})
}
