package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubhub/internal/app/models/dto"
)

// HealthChecker reports whether a backing store is reachable
type HealthChecker func(ctx context.Context) error

// HealthController answers liveness checks
type HealthController struct {
	driver string
	check  HealthChecker
}

// NewHealthController creates a new HealthController; check may be nil
func NewHealthController(driver string, check HealthChecker) *HealthController {
	return &HealthController{driver: driver, check: check}
}

// Health pings the store with a short deadline
func (c *HealthController) Health(ctx *gin.Context) {
	status := gin.H{"status": "ok", "database": c.driver}
	if c.check != nil {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.check(checkCtx); err != nil {
			status["status"] = "degraded"
			status["error"] = err.Error()
			ctx.JSON(http.StatusServiceUnavailable, dto.APIResponse{
				Success:   false,
				Data:      status,
				Timestamp: time.Now(),
			})
			return
		}
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status, ""))
}
