package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/projectsign/internal/repository"
	"github.com/linskybing/projectsign/pkg/response"
)

type HealthHandler struct {
	repos *repository.Repos
}

func NewHealthHandler(repos *repository.Repos) *HealthHandler {
	return &HealthHandler{repos: repos}
}

// Healthz godoc
// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /healthz [get]
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.repos.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "database unavailable"})
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "ok"})
}
