package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker func(ctx context.Context) error

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthHandler defines the interface for the liveness endpoint
type HealthHandler interface {
	Health(ctx *gin.Context)
}

type healthHandler struct {
	check HealthChecker
}

// NewHealthHandler creates a HealthHandler. A nil check always reports ok.
func NewHealthHandler(check HealthChecker) HealthHandler {
	return &healthHandler{check: check}
}

// Health handles the GET request for service health
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (handler *healthHandler) Health(ctx *gin.Context) {
	if handler.check != nil {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := handler.check(checkCtx); err != nil {
			_ = ctx.Error(err)
			ctx.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
			return
		}
	}
	ctx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
