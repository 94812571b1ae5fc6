package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/app/repositories"
)

const healthTimeout = 2 * time.Second

// HealthResponse reports service and storage status
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Storage string `json:"storage" example:"up"`
}

// HealthController serves the liveness endpoint
type HealthController struct {
	storage repositories.Pinger
	logger  zerolog.Logger
}

// NewHealthController creates a new HealthController. A nil storage is reported as up.
func NewHealthController(storage repositories.Pinger, logger zerolog.Logger) *HealthController {
	return &HealthController{storage: storage, logger: logger}
}

// Health godoc
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=controllers.HealthResponse}
// @Failure 503 {object} dto.APIResponse{data=controllers.HealthResponse}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	if c.storage != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthTimeout)
		defer cancel()
		if err := c.storage.Ping(pingCtx); err != nil {
			c.logger.Warn().Err(err).Msg("Storage health check failed")
			resp := dto.NewSuccessResponse(HealthResponse{Status: "degraded", Storage: "down"})
			resp.Success = false
			ctx.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(HealthResponse{Status: "ok", Storage: "up"}))
}
